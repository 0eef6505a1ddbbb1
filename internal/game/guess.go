package game

import (
	"fmt"

	"pictocode/internal/model"
)

// GuessCandidate is an unmatched image as seen by the guess resolver:
// its identity plus the live tags that form its comparison set.
type GuessCandidate struct {
	ImageID string
	URL     string
	Tags    []model.Tag
}

// RevealOutcome reports what a single reveal did to the room.
type RevealOutcome struct {
	Image        model.GameImage
	GameOver     bool
	Winner       *model.Team
	TurnSwitched bool
	// Continue is false when the reveal ended the sequence early:
	// assassin, wrong-team miss, or a cleared board.
	Continue bool
}

// BeginGuess validates the submit-guess preconditions and, if they
// hold, claims the room's single guess slot for the caller. Every
// failure is ErrNotYourTurn except a concurrent sequence, which is
// ErrGuessInFlight; both are dropped silently upstream so the wrong
// client learns nothing about turn state. Returns the unmatched
// candidates in board order.
func (r *Room) BeginGuess(playerID string) ([]GuessCandidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	if r.phase != model.PhaseGuessing {
		return nil, ErrNotYourTurn
	}
	var player *model.Player
	for i := range r.players {
		if r.players[i].ID == playerID {
			player = &r.players[i]
			break
		}
	}
	if player == nil || player.Team != r.currentTurn || player.Role != model.RoleCodebreaker {
		return nil, ErrNotYourTurn
	}
	if r.guessing {
		return nil, ErrGuessInFlight
	}
	r.guessing = true

	var candidates []GuessCandidate
	for _, img := range r.images {
		if img.Matched {
			continue
		}
		tags := make([]model.Tag, len(img.Tags))
		copy(tags, img.Tags)
		candidates = append(candidates, GuessCandidate{
			ImageID: img.ID,
			URL:     img.URL,
			Tags:    tags,
		})
	}
	return candidates, nil
}

// ApplyReveal marks one candidate as matched and applies the turn,
// score and win bookkeeping for it. Exactly one of matchedTag and
// matchedDescription must be set, recording whether a live tag or a
// ledger/default description won the comparison.
func (r *Room) ApplyReveal(imageID, word string, similarity float64, matchedTag *model.Tag, matchedDescription string) (RevealOutcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	var img *model.GameImage
	for i := range r.images {
		if r.images[i].ID == imageID {
			img = &r.images[i]
			break
		}
	}
	if img == nil || img.Matched {
		return RevealOutcome{}, false
	}

	img.Matched = true
	img.MatchedWord = word
	img.Similarity = similarity
	img.FormattedSimilarity = fmt.Sprintf("%.1f%%", similarity*100)
	if matchedTag != nil {
		tag := *matchedTag
		img.MatchedTag = &tag
	} else {
		img.MatchedDescription = matchedDescription
	}

	outcome := RevealOutcome{Image: *img}
	turn := r.currentTurn

	switch {
	case img.Team == model.ImageAssassin:
		winner := turn.Opponent()
		r.winner = &winner
		r.phase = model.PhaseGameOver
		outcome.GameOver = true
		outcome.Winner = &winner

	case img.Team != model.ImageTeam(turn):
		r.teamStats(turn).IncorrectGuesses++
		r.currentTurn = turn.Opponent()
		outcome.TurnSwitched = true

	default:
		stats := r.teamStats(turn)
		stats.CorrectGuesses++
		stats.TotalSimilarity += similarity
		if winner, done := r.clearedTeamLocked(); done {
			r.winner = &winner
			r.phase = model.PhaseGameOver
			outcome.GameOver = true
			outcome.Winner = &winner
		} else {
			outcome.Continue = true
		}
	}

	return outcome, true
}

// EndGuess releases the guess slot. A guess that ran its full reveal
// queue without an early stop ends the guesser's turn.
func (r *Room) EndGuess(switchTurn bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guessing = false
	if switchTurn && r.phase == model.PhaseGuessing {
		r.currentTurn = r.currentTurn.Opponent()
	}
}

func (r *Room) teamStats(team model.Team) *model.TeamStats {
	if team == model.TeamGreen {
		return &r.stats.Green
	}
	return &r.stats.Purple
}

// clearedTeamLocked reports whether either team's full image set is
// matched, which ends the game in that team's favor even when the
// other side cleared it for them.
func (r *Room) clearedTeamLocked() (model.Team, bool) {
	remaining := map[model.ImageTeam]int{}
	for _, img := range r.images {
		if !img.Matched {
			remaining[img.Team]++
		}
	}
	if remaining[model.ImageGreen] == 0 {
		return model.TeamGreen, true
	}
	if remaining[model.ImagePurple] == 0 {
		return model.TeamPurple, true
	}
	return "", false
}
