package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"pictocode/internal/game"
	"pictocode/internal/model"
)

// Sleeper waits out a pacing delay. The default sleeps on the wall
// clock but aborts on context cancellation; tests inject an instant
// one so reveal sequences run without real waits.
type Sleeper func(ctx context.Context, d time.Duration)

func sleepWallClock(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// GuessService resolves submit-guess: it scores the guessed word
// against every outstanding image in one oracle batch, then reveals
// the best matches in similarity order with suspense pacing, applying
// turn, score and win bookkeeping per reveal.
type GuessService struct {
	ledger      *game.DescriptionLedger
	oracle      SimilarityOracle
	broadcaster Broadcaster

	revealBuffer   time.Duration
	revealInterval time.Duration
	sleep          Sleeper
}

// NewGuessService creates a new guess service
func NewGuessService(ledger *game.DescriptionLedger, oracle SimilarityOracle, revealBuffer, revealInterval time.Duration) *GuessService {
	return &GuessService{
		ledger:         ledger,
		oracle:         oracle,
		revealBuffer:   revealBuffer,
		revealInterval: revealInterval,
		sleep:          sleepWallClock,
	}
}

// SetBroadcaster injects the WebSocket broadcaster.
func (s *GuessService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetSleeper replaces the pacing sleeper, for tests.
func (s *GuessService) SetSleeper(sleep Sleeper) {
	s.sleep = sleep
}

// candidateScore is one candidate's best match against the guessed
// word. Exactly one of tag and description is set, recording which
// kind of text won.
type candidateScore struct {
	imageID     string
	order       int
	similarity  float64
	tag         *model.Tag
	description string
}

// SubmitGuess runs the full resolution pipeline for one guess. The
// room's guess slot stays claimed for the whole sequence, so a second
// submit-guess during a multi-second reveal is rejected rather than
// interleaved. Precondition failures return silently; the client must
// not learn why an out-of-turn action was ignored.
func (s *GuessService) SubmitGuess(ctx context.Context, room *game.Room, playerID, word string, count int) {
	candidates, err := room.BeginGuess(playerID)
	if err != nil {
		log.Debug().Err(err).Str("room", room.ID()).Str("player", playerID).Msg("submit-guess dropped")
		return
	}

	started := time.Now()
	roomID := room.ID()
	s.broadcaster.BroadcastToRoom(roomID, EventGuessStart, map[string]interface{}{
		"word":  word,
		"count": count,
	})

	// guess-end is the unconditional terminal signal, emitted even on
	// oracle failure so clients never stall in the buffering state.
	switchTurn := false
	defer func() {
		room.EndGuess(switchTurn)
		s.broadcaster.BroadcastToRoom(roomID, EventGuessEnd, map[string]interface{}{
			"word": word,
		})
	}()

	scores, err := s.scoreCandidates(ctx, roomID, word, candidates)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Str("word", word).Msg("oracle batch failed, guess aborted")
		return
	}

	// Rank by similarity, ties by original candidate order.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].similarity > scores[j].similarity
	})
	if count < 1 {
		count = 1
	}
	if count > len(scores) {
		count = len(scores)
	}
	queue := scores[:count]

	// Uniform suspense: the first reveal never lands before the buffer
	// has elapsed since guess-start, however fast the oracle was.
	s.sleep(ctx, s.revealBuffer-time.Since(started))

	revealedAll := true
	for i, rec := range queue {
		if i > 0 {
			s.sleep(ctx, s.revealInterval)
		}

		outcome, ok := room.ApplyReveal(rec.imageID, word, rec.similarity, rec.tag, rec.description)
		if !ok {
			continue
		}

		s.broadcaster.BroadcastToRoom(roomID, EventMatchReveal, map[string]interface{}{
			"image":      outcome.Image,
			"word":       word,
			"similarity": rec.similarity,
		})
		s.broadcaster.BroadcastToRoom(roomID, EventRoomUpdated, room.Snapshot())

		if outcome.GameOver {
			log.Info().Str("room", roomID).Str("winner", string(*outcome.Winner)).Msg("game over")
			revealedAll = false
			break
		}
		if !outcome.Continue {
			revealedAll = false
			break
		}
	}

	// A guess that ran its whole queue still ends the guesser's turn.
	switchTurn = revealedAll
}

// scoreCandidates builds every candidate's comparison set, submits
// the flattened pairs as a single oracle batch and picks each
// candidate's best description by argmax, first occurrence winning
// ties.
func (s *GuessService) scoreCandidates(ctx context.Context, roomID, word string, candidates []game.GuessCandidate) ([]candidateScore, error) {
	type span struct {
		candidate game.GuessCandidate
		order     int
		start     int // index of first pair in the batch
		texts     []string
		fromTags  bool
	}

	var pairs []SimilarityPair
	var spans []span

	for order, c := range candidates {
		// Live tags take precedence: when a candidate has any, the
		// ledger is not consulted for it at all.
		var texts []string
		fromTags := len(c.Tags) > 0
		if fromTags {
			for _, tag := range c.Tags {
				texts = append(texts, tag.Text)
			}
		} else {
			texts = s.ledger.Descriptions(roomID, c.URL)
			if len(texts) == 0 {
				if def := s.ledger.Default(c.URL); def != "" {
					texts = []string{def}
				}
			}
		}
		if len(texts) == 0 {
			continue
		}

		spans = append(spans, span{candidate: c, order: order, start: len(pairs), texts: texts, fromTags: fromTags})
		for _, text := range texts {
			pairs = append(pairs, SimilarityPair{Word: word, Description: text})
		}
	}

	if len(pairs) == 0 {
		return nil, nil
	}

	scores, err := s.oracle.CompareBatch(ctx, pairs)
	if err != nil {
		return nil, err
	}

	var out []candidateScore
	for _, sp := range spans {
		best := 0
		for i := 1; i < len(sp.texts); i++ {
			if scores[sp.start+i] > scores[sp.start+best] {
				best = i
			}
		}

		rec := candidateScore{
			imageID:    sp.candidate.ImageID,
			order:      sp.order,
			similarity: scores[sp.start+best],
		}
		if sp.fromTags {
			tag := sp.candidate.Tags[best]
			rec.tag = &tag
		} else {
			rec.description = sp.texts[best]
		}
		out = append(out, rec)
	}
	return out, nil
}
