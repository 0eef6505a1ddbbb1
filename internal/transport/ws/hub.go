package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for rooms
type Hub struct {
	// Room -> connections
	conns   map[string]map[*Connection]bool
	players map[string]map[string]*Connection // roomID -> playerID -> conn

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	RoomID   string
	PlayerID string // Empty until the connection joins as a player
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	RoomID   string
	ToPlayer string // Empty means the whole room, specific ID means one connection
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		players:    make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.RoomID] == nil {
				h.conns[conn.RoomID] = make(map[*Connection]bool)
			}
			h.conns[conn.RoomID][conn] = true
			if conn.PlayerID != "" {
				if h.players[conn.RoomID] == nil {
					h.players[conn.RoomID] = make(map[string]*Connection)
				}
				h.players[conn.RoomID][conn.PlayerID] = conn
				log.Debug().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("connection bound to player")
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.RoomID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if conn.PlayerID != "" {
					if players, ok := h.players[conn.RoomID]; ok && players[conn.PlayerID] == conn {
						delete(players, conn.PlayerID)
					}
				}
				log.Debug().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("connection closed")
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToPlayer != "" {
				if players, ok := h.players[msg.RoomID]; ok {
					if conn, ok := players[msg.ToPlayer]; ok {
						select {
						case conn.Send <- data:
						default:
							// Drop message if buffer full
						}
					}
				}
			} else {
				for conn := range h.conns[msg.RoomID] {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection, or re-indexes one that has since bound
// to a player id.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToRoom sends a message to every connection in a room
// (implements service.Broadcaster)
func (h *Hub) BroadcastToRoom(roomID string, event string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		RoomID: roomID,
		Message: &Message{
			Type:    event,
			Payload: data,
		},
	}
}

// BroadcastToPlayer sends a message to a specific player's connection
// (implements service.Broadcaster)
func (h *Hub) BroadcastToPlayer(roomID, playerID string, event string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		RoomID:   roomID,
		ToPlayer: playerID,
		Message: &Message{
			Type:    event,
			Payload: data,
		},
	}
}
