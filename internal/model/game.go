package model

// Team is one of the two competing sides.
type Team string

const (
	TeamGreen  Team = "green"
	TeamPurple Team = "purple"
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamGreen {
		return TeamPurple
	}
	return TeamGreen
}

// Valid reports whether t names a playable team.
func (t Team) Valid() bool {
	return t == TeamGreen || t == TeamPurple
}

// ImageTeam is a Team or the assassin sentinel. The assassin is
// serialized as "red" on the wire.
type ImageTeam string

const (
	ImageGreen    ImageTeam = ImageTeam(TeamGreen)
	ImagePurple   ImageTeam = ImageTeam(TeamPurple)
	ImageAssassin ImageTeam = "red"
)

// Role determines what a player may do on their team's turn.
type Role string

const (
	// RoleTagger contributes descriptions during the playing phase.
	RoleTagger Role = "tagger"
	// RoleCodebreaker is the only role allowed to submit guesses.
	RoleCodebreaker Role = "codebreaker"
)

// Phase is the room lifecycle state.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhasePlaying  Phase = "playing"
	PhaseGuessing Phase = "guessing"
	PhaseGameOver Phase = "gameOver"
)

// Tag is a short description a player attached to an image.
type Tag struct {
	Text           string `json:"text"`
	PlayerID       string `json:"playerId"`
	PlayerNickname string `json:"playerNickname"`
}

// TeamStats accumulates a team's guessing record for one round.
type TeamStats struct {
	CorrectGuesses   int     `json:"correctGuesses"`
	IncorrectGuesses int     `json:"incorrectGuesses"`
	TotalSimilarity  float64 `json:"totalSimilarity"`
}

// GameStats holds both teams' records.
type GameStats struct {
	Green  TeamStats `json:"green"`
	Purple TeamStats `json:"purple"`
}
