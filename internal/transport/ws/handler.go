package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"pictocode/internal/game"
	"pictocode/internal/model"
	"pictocode/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Inbound action names. add-tag and set-role are legacy aliases the
// original clients still send.
const (
	ActionJoinRoom     = "join-room"
	ActionSwitchTeam   = "switch-team"
	ActionSwitchRole   = "switch-role"
	ActionSetRole      = "set-role"
	ActionStartGame    = "start-game"
	ActionSubmitTag    = "submit-tag"
	ActionAddTag       = "add-tag"
	ActionSelectImage  = "select-image"
	ActionPhaseChange  = "phase-change"
	ActionTimerExpired = "timer-expired"
	ActionTimerUpdate  = "timer-update"
	ActionSubmitGuess  = "submit-guess"
	ActionResetGame    = "reset-game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *Hub
	sessions *service.SessionService
	guesses  *service.GuessService
	registry *game.Registry
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, sessions *service.SessionService, guesses *service.GuessService, registry *game.Registry) *Handler {
	return &Handler{
		hub:      hub,
		sessions: sessions,
		guesses:  guesses,
		registry: registry,
	}
}

// RoomWS handles GET /ws/rooms/{roomId}
func (h *Handler) RoomWS(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	conn := &Connection{
		RoomID: roomID,
		Send:   make(chan []byte, 256),
		Hub:    h.hub,
	}
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Misbehaving clients get their actions dropped, not the room.
	limiter := rate.NewLimiter(rate.Limit(20), 40)

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("room", conn.RoomID).Msg("WebSocket error")
			}
			break
		}
		if !limiter.Allow() {
			log.Warn().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("rate limit exceeded, action dropped")
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("room", conn.RoomID).Msg("malformed action dropped")
			continue
		}
		h.dispatch(conn, &msg)
	}
}

// dispatch routes one inbound action. Unknown actions and unknown
// rooms are dropped; nothing in here may take down the pump.
func (h *Handler) dispatch(conn *Connection, msg *Message) {
	roomID := conn.RoomID

	switch msg.Type {
	case ActionJoinRoom:
		var p struct {
			RoomID string       `json:"roomId"`
			Player model.Player `json:"player"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil || p.Player.ID == "" {
			return
		}
		// Bind the connection to the player before joining so the
		// game-state unicast has somewhere to land.
		conn.PlayerID = p.Player.ID
		h.hub.Register(conn)
		h.sessions.Join(roomID, p.Player)

	case ActionSwitchTeam:
		var p struct {
			PlayerID string     `json:"playerId"`
			NewTeam  model.Team `json:"newTeam"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		h.sessions.SwitchTeam(roomID, p.PlayerID, p.NewTeam)

	case ActionSwitchRole, ActionSetRole:
		var p struct {
			PlayerID string     `json:"playerId"`
			Role     model.Role `json:"role"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		h.sessions.SetRole(roomID, p.PlayerID, p.Role)

	case ActionStartGame:
		h.sessions.StartGame(roomID)

	case ActionSubmitTag, ActionAddTag:
		var p struct {
			PlayerID string `json:"playerId"`
			ImageID  string `json:"imageId"`
			Text     string `json:"text"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil || p.Text == "" {
			return
		}
		playerID := p.PlayerID
		if playerID == "" {
			playerID = conn.PlayerID
		}
		h.sessions.SubmitTag(roomID, playerID, p.ImageID, p.Text)

	case ActionSelectImage:
		var p struct {
			ImageID  string `json:"imageId"`
			Selected bool   `json:"selected"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		h.sessions.SelectImage(roomID, p.ImageID, p.Selected)

	case ActionPhaseChange:
		var p struct {
			Phase model.Phase `json:"phase"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		h.sessions.ChangePhase(roomID, p.Phase)

	case ActionTimerExpired:
		h.sessions.TimerExpired(roomID)

	case ActionTimerUpdate:
		var p struct {
			TimeRemaining int `json:"timeRemaining"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		h.sessions.TimerUpdate(roomID, p.TimeRemaining)

	case ActionSubmitGuess:
		var p struct {
			PlayerID string `json:"playerId"`
			Word     string `json:"word"`
			Count    int    `json:"count"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil || p.Word == "" {
			return
		}
		playerID := p.PlayerID
		if playerID == "" {
			playerID = conn.PlayerID
		}
		room, err := h.registry.Get(roomID)
		if err != nil {
			return
		}
		// The reveal sequence spans many seconds; it must not stall
		// this connection's read loop.
		go h.guesses.SubmitGuess(context.Background(), room, playerID, p.Word, p.Count)

	case ActionResetGame:
		h.sessions.ResetGame(roomID)

	default:
		log.Debug().Str("type", msg.Type).Str("room", roomID).Msg("unknown action dropped")
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
