package model

// GameState is the full wire snapshot of a room, broadcast as
// room-updated and sent as game-state to a joining connection.
type GameState struct {
	ID            string      `json:"id"`
	RoomID        string      `json:"roomId"`
	Phase         Phase       `json:"phase"`
	Players       []Player    `json:"players"`
	Images        []GameImage `json:"images"`
	CurrentTurn   Team        `json:"currentTurn"`
	TimeRemaining int         `json:"timeRemaining"`
	Winner        *Team       `json:"winner"`
	GameStats     GameStats   `json:"gameStats"`
}
