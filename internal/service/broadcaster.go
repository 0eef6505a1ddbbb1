package service

// Outbound event names, matching the original client protocol.
const (
	EventRoomUpdated  = "room-updated"
	EventImageUpdated = "image-updated"
	EventGameStarted  = "game-started"
	EventGameError    = "game-error"
	EventGuessStart   = "guess-start"
	EventGuessEnd     = "guess-end"
	EventMatchReveal  = "match-reveal"

	// EventGameState is unicast to a newly joined connection only.
	EventGameState = "game-state"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	// BroadcastToRoom multicasts to every connection in a room.
	BroadcastToRoom(roomID string, event string, payload interface{})
	// BroadcastToPlayer unicasts to one player's connection.
	BroadcastToPlayer(roomID, playerID string, event string, payload interface{})
}
