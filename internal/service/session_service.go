package service

import (
	"errors"

	"github.com/rs/zerolog/log"

	"pictocode/internal/game"
	"pictocode/internal/model"
)

// SessionService handles every room-scoped action other than
// submit-guess: lifecycle, membership, tagging and timers. Actions
// arriving over the socket are fire-and-forget, so unknown rooms and
// players are dropped silently here and only logged.
type SessionService struct {
	registry    *game.Registry
	ledger      *game.DescriptionLedger
	broadcaster Broadcaster
}

// NewSessionService creates a new session service
func NewSessionService(registry *game.Registry, ledger *game.DescriptionLedger) *SessionService {
	return &SessionService{
		registry: registry,
		ledger:   ledger,
	}
}

// SetBroadcaster injects the WebSocket broadcaster.
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateRoom allocates a new room and returns its id.
func (s *SessionService) CreateRoom() (string, error) {
	return s.registry.Create()
}

// RoomState returns the full snapshot for a room.
func (s *SessionService) RoomState(roomID string) (model.GameState, error) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return model.GameState{}, err
	}
	return room.Snapshot(), nil
}

// ClearDescriptions empties the room's ledger history.
func (s *SessionService) ClearDescriptions(roomID string) error {
	if _, err := s.registry.Get(roomID); err != nil {
		return err
	}
	s.ledger.ClearRoom(roomID)
	return nil
}

// Join adds the player to the room, multicasts the new roster and
// returns the snapshot for the joining connection's unicast.
func (s *SessionService) Join(roomID string, player model.Player) (model.GameState, error) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		log.Warn().Str("room", roomID).Msg("join-room for unknown room")
		return model.GameState{}, err
	}

	stored := room.Join(player)
	log.Info().Str("room", roomID).Str("player", stored.ID).Str("team", string(stored.Team)).Msg("player joined")

	snapshot := room.Snapshot()
	s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, snapshot)
	s.broadcaster.BroadcastToPlayer(roomID, stored.ID, EventGameState, snapshot)
	return snapshot, nil
}

// SwitchTeam moves a player to the other side.
func (s *SessionService) SwitchTeam(roomID, playerID string, team model.Team) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	if room.SwitchTeam(playerID, team) {
		s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
	}
}

// SetRole overrides a player's role.
func (s *SessionService) SetRole(roomID, playerID string, role model.Role) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	if room.SetRole(playerID, role) {
		s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
	}
}

// StartGame deals a strict board and moves the room into the playing
// phase. A short draw reverts to the lobby and signals a game error
// rather than leaving a half-initialized room.
func (s *SessionService) StartGame(roomID string) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}

	descriptors, err := s.registry.Draw(game.BoardSize)
	if err == nil {
		err = room.StartGame(descriptors)
	} else {
		err = room.StartGame(nil)
	}
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("start-game failed")
		s.broadcaster.BroadcastToRoom(roomID, EventGameError, map[string]string{
			"error": "could not start the game",
		})
		s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
		return
	}

	log.Info().Str("room", roomID).Msg("game started")
	s.broadcaster.BroadcastToRoom(roomID, EventGameStarted, room.Snapshot())
	s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
}

// SubmitTag records a player's tag on an image, replacing their
// previous tag there, and multicasts the image delta.
func (s *SessionService) SubmitTag(roomID, playerID, imageID, text string) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	if img, ok := room.UpsertTag(playerID, imageID, text); ok {
		s.broadcaster.BroadcastToRoom(roomID, EventImageUpdated, img)
	}
}

// SelectImage flags an image as under consideration.
func (s *SessionService) SelectImage(roomID, imageID string, selected bool) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	if img, ok := room.SetSelected(imageID, selected); ok {
		s.broadcaster.BroadcastToRoom(roomID, EventImageUpdated, img)
	}
}

// ChangePhase handles the client-driven playing->guessing transition.
// Any other requested transition is ignored.
func (s *SessionService) ChangePhase(roomID string, phase model.Phase) {
	if phase != model.PhaseGuessing {
		return
	}
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	if room.BeginGuessing(s.ledger) {
		s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
	}
}

// TimerUpdate stores the client-reported countdown.
func (s *SessionService) TimerUpdate(roomID string, seconds int) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	room.SetTimeRemaining(seconds)
}

// TimerExpired advances whatever the countdown was gating.
func (s *SessionService) TimerExpired(roomID string) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	if room.TimerExpired(s.ledger) {
		s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
	}
}

// ResetGame returns the room to the lobby with a fresh board, keeping
// the roster.
func (s *SessionService) ResetGame(roomID string) {
	room, err := s.registry.Get(roomID)
	if err != nil {
		return
	}

	descriptors, err := s.registry.Draw(game.BoardSize)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("reset-game draw failed")
		s.broadcaster.BroadcastToRoom(roomID, EventGameError, map[string]string{
			"error": "could not reset the game",
		})
		return
	}

	room.Reset(descriptors, s.ledger)
	s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())
}

// IsNotFound reports whether err is the registry's not-found error,
// wrapped or not.
func IsNotFound(err error) bool {
	return errors.Is(err, game.ErrRoomNotFound)
}
