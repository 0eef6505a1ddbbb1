package model

// Player represents a participant in a room
type Player struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	Team        Team   `json:"team"`
	Role        Role   `json:"role"`
	IsRoomAdmin bool   `json:"isRoomAdmin"`
	RoomID      string `json:"roomId"`
}
