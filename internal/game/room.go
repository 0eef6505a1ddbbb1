package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"pictocode/internal/model"
)

const (
	// BoardSize is the number of images dealt by start-game.
	BoardSize = 15
	// ImagesPerTeam is each team's share of the board; the one
	// remaining image is the assassin.
	ImagesPerTeam = 7

	// TaggingSeconds is the clock for the playing (tagging) phase.
	TaggingSeconds = 120
	// GuessingSeconds is the clock for one guessing turn.
	GuessingSeconds = 60
)

var (
	// ErrNotEnoughImages means the provider draw did not yield the
	// exact board size.
	ErrNotEnoughImages = errors.New("provider did not yield a full board")
	// ErrGuessInFlight means a reveal sequence is already running for
	// the room.
	ErrGuessInFlight = errors.New("a guess is already being resolved")
	// ErrNotYourTurn covers every silent precondition failure of
	// submit-guess: wrong phase, wrong team, wrong role.
	ErrNotYourTurn = errors.New("player may not guess now")
)

// Room owns all state of one game instance. Every mutation goes
// through the room mutex; the guessing flag additionally keeps a
// whole reveal sequence exclusive, since the resolver releases the
// mutex across oracle calls and pacing waits.
type Room struct {
	mu sync.Mutex

	id            string
	phase         model.Phase
	players       []model.Player
	images        []model.GameImage
	currentTurn   model.Team
	timeRemaining int
	winner        *model.Team
	stats         model.GameStats

	guessing   bool
	lastActive time.Time
}

// NewRoom creates a lobby-phase room over the given descriptors.
// Teams are assigned by independent coin flips; start-game replaces
// them with the strict board split.
func NewRoom(id string, descriptors []model.ImageDescriptor) *Room {
	r := &Room{
		id:            id,
		phase:         model.PhaseLobby,
		currentTurn:   model.TeamGreen,
		timeRemaining: TaggingSeconds,
		images:        coinFlipImages(descriptors),
		lastActive:    time.Now(),
	}
	return r
}

func coinFlipImages(descriptors []model.ImageDescriptor) []model.GameImage {
	images := make([]model.GameImage, 0, len(descriptors))
	for _, d := range descriptors {
		team := model.ImageGreen
		if rand.Intn(2) == 0 {
			team = model.ImagePurple
		}
		images = append(images, model.GameImage{
			ID:   uuid.NewString(),
			URL:  d.URL,
			Team: team,
			Tags: []model.Tag{},
		})
	}
	return images
}

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// Phase returns the current phase.
func (r *Room) Phase() model.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// LastActive reports when the room last handled an action.
func (r *Room) LastActive() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive
}

func (r *Room) touch() { r.lastActive = time.Now() }

// Snapshot returns a deep copy of the room's wire state.
func (r *Room) Snapshot() model.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() model.GameState {
	players := make([]model.Player, len(r.players))
	copy(players, r.players)

	images := make([]model.GameImage, len(r.images))
	for i, img := range r.images {
		tags := make([]model.Tag, len(img.Tags))
		copy(tags, img.Tags)
		img.Tags = tags
		if img.MatchedTag != nil {
			tag := *img.MatchedTag
			img.MatchedTag = &tag
		}
		images[i] = img
	}

	var winner *model.Team
	if r.winner != nil {
		w := *r.winner
		winner = &w
	}

	return model.GameState{
		ID:            r.id,
		RoomID:        r.id,
		Phase:         r.phase,
		Players:       players,
		Images:        images,
		CurrentTurn:   r.currentTurn,
		TimeRemaining: r.timeRemaining,
		Winner:        winner,
		GameStats:     r.stats,
	}
}

// Image returns a copy of the image with the given id.
func (r *Room) Image(imageID string) (model.GameImage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.ID == imageID {
			return img, true
		}
	}
	return model.GameImage{}, false
}

// Join adds or re-adds a player. The first player in the room becomes
// admin; the first player on a team defaults to codebreaker, later
// joiners to tagger. Returns the stored player.
func (r *Room) Join(p model.Player) model.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	p.RoomID = r.id
	if !p.Team.Valid() {
		p.Team = r.smallerTeamLocked()
	}
	p.IsRoomAdmin = len(r.players) == 0
	if p.Role != model.RoleTagger && p.Role != model.RoleCodebreaker {
		p.Role = r.defaultRoleLocked(p.Team, p.ID)
	}

	for i := range r.players {
		if r.players[i].ID == p.ID {
			p.IsRoomAdmin = r.players[i].IsRoomAdmin
			r.players[i] = p
			return p
		}
	}
	r.players = append(r.players, p)
	return p
}

func (r *Room) smallerTeamLocked() model.Team {
	var green, purple int
	for _, p := range r.players {
		if p.Team == model.TeamGreen {
			green++
		} else {
			purple++
		}
	}
	if purple < green {
		return model.TeamPurple
	}
	return model.TeamGreen
}

// defaultRoleLocked gives the team's first member the codebreaker
// role, everyone after the tagger role.
func (r *Room) defaultRoleLocked(team model.Team, excludePlayerID string) model.Role {
	for _, p := range r.players {
		if p.ID != excludePlayerID && p.Team == team {
			return model.RoleTagger
		}
	}
	return model.RoleCodebreaker
}

// SwitchTeam moves a player to the given team and re-derives their
// default role there. Valid in any phase.
func (r *Room) SwitchTeam(playerID string, team model.Team) bool {
	if !team.Valid() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	for i := range r.players {
		if r.players[i].ID == playerID {
			r.players[i].Team = team
			r.players[i].Role = r.defaultRoleLocked(team, playerID)
			return true
		}
	}
	return false
}

// SetRole overrides a player's role. Valid in any phase.
func (r *Room) SetRole(playerID string, role model.Role) bool {
	if role != model.RoleTagger && role != model.RoleCodebreaker {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	for i := range r.players {
		if r.players[i].ID == playerID {
			r.players[i].Role = role
			return true
		}
	}
	return false
}

// Player returns a copy of the player with the given id.
func (r *Room) Player(playerID string) (model.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == playerID {
			return p, true
		}
	}
	return model.Player{}, false
}

// StartGame transitions lobby->playing over a fresh board. The draw
// must be exactly BoardSize descriptors; anything else reverts the
// room to an empty lobby and returns ErrNotEnoughImages so the caller
// can signal a game error instead of leaving a half-initialized room.
func (r *Room) StartGame(descriptors []model.ImageDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	if len(descriptors) != BoardSize {
		r.phase = model.PhaseLobby
		r.images = []model.GameImage{}
		return fmt.Errorf("%w: got %d images, need %d", ErrNotEnoughImages, len(descriptors), BoardSize)
	}

	teams := make([]model.ImageTeam, 0, BoardSize)
	for i := 0; i < ImagesPerTeam; i++ {
		teams = append(teams, model.ImageGreen, model.ImagePurple)
	}
	teams = append(teams, model.ImageAssassin)
	rand.Shuffle(len(teams), func(i, j int) {
		teams[i], teams[j] = teams[j], teams[i]
	})

	images := make([]model.GameImage, 0, BoardSize)
	for i, d := range descriptors {
		images = append(images, model.GameImage{
			ID:   uuid.NewString(),
			URL:  d.URL,
			Team: teams[i],
			Tags: []model.Tag{},
		})
	}

	r.images = images
	r.phase = model.PhasePlaying
	r.currentTurn = model.TeamGreen
	r.timeRemaining = TaggingSeconds
	r.winner = nil
	r.stats = model.GameStats{}
	r.guessing = false
	return nil
}

// BeginGuessing transitions playing->guessing. All live tags are
// folded into the ledger first, so they remain available as history
// in later rounds; selections are cleared for the new phase.
func (r *Room) BeginGuessing(ledger *DescriptionLedger) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	if r.phase != model.PhasePlaying {
		return false
	}
	for i := range r.images {
		for _, tag := range r.images[i].Tags {
			ledger.AddDescription(r.id, r.images[i].URL, tag.Text)
		}
		r.images[i].Selected = false
	}
	r.phase = model.PhaseGuessing
	r.timeRemaining = GuessingSeconds
	r.currentTurn = model.TeamGreen
	return true
}

// Reset returns the room to the lobby with a fresh coin-flip board,
// clearing its ledger history and stats but keeping players, teams
// and roles.
func (r *Room) Reset(descriptors []model.ImageDescriptor, ledger *DescriptionLedger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	ledger.ClearRoom(r.id)
	r.images = coinFlipImages(descriptors)
	r.phase = model.PhaseLobby
	r.currentTurn = model.TeamGreen
	r.timeRemaining = TaggingSeconds
	r.winner = nil
	r.stats = model.GameStats{}
	r.guessing = false
}

// UpsertTag records a player's tag on an image, replacing any earlier
// tag by the same player on that image. Returns the updated image.
func (r *Room) UpsertTag(playerID, imageID, text string) (model.GameImage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	var nickname string
	for _, p := range r.players {
		if p.ID == playerID {
			nickname = p.Nickname
			break
		}
	}
	if nickname == "" {
		return model.GameImage{}, false
	}

	for i := range r.images {
		if r.images[i].ID != imageID {
			continue
		}
		tag := model.Tag{Text: text, PlayerID: playerID, PlayerNickname: nickname}
		replaced := false
		for j := range r.images[i].Tags {
			if r.images[i].Tags[j].PlayerID == playerID {
				r.images[i].Tags[j] = tag
				replaced = true
				break
			}
		}
		if !replaced {
			r.images[i].Tags = append(r.images[i].Tags, tag)
		}
		return r.images[i], true
	}
	return model.GameImage{}, false
}

// SetSelected flags or unflags an image as under consideration.
func (r *Room) SetSelected(imageID string, selected bool) (model.GameImage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	for i := range r.images {
		if r.images[i].ID == imageID {
			r.images[i].Selected = selected
			return r.images[i], true
		}
	}
	return model.GameImage{}, false
}

// SetTimeRemaining stores the client-reported countdown.
func (r *Room) SetTimeRemaining(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeRemaining = seconds
}

// TimerExpired handles the countdown reaching zero. In the playing
// phase it triggers the guessing transition; in the guessing phase
// the lapsed turn passes to the other team.
func (r *Room) TimerExpired(ledger *DescriptionLedger) bool {
	r.mu.Lock()
	phase := r.phase
	r.mu.Unlock()

	switch phase {
	case model.PhasePlaying:
		return r.BeginGuessing(ledger)
	case model.PhaseGuessing:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.phase != model.PhaseGuessing || r.guessing {
			return false
		}
		r.touch()
		r.currentTurn = r.currentTurn.Opponent()
		r.timeRemaining = GuessingSeconds
		return true
	default:
		return false
	}
}
