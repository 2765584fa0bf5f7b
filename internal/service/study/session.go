package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/stats"
)

// State is the phase of a study session.
type State string

const (
	StateActive   State = "active"
	StateComplete State = "complete"
)

// Session is one pass through a deck. It is not safe for concurrent use;
// callers serialize access.
type Session struct {
	svc *Service

	deck    domain.Deck
	index   int
	flipped bool
	results map[string]bool
	done    bool
	summary domain.SessionSummary
}

func newSession(svc *Service, deck domain.Deck) *Session {
	return &Session{
		svc:     svc,
		deck:    deck,
		results: make(map[string]bool),
	}
}

// DeckID returns the id of the deck being studied.
func (s *Session) DeckID() string { return s.deck.ID }

// State returns the current phase.
func (s *Session) State() State {
	if s.done {
		return StateComplete
	}
	return StateActive
}

// Flip toggles between the question and the answer face.
func (s *Session) Flip() error {
	if err := s.requireActive(); err != nil {
		return err
	}
	s.flipped = !s.flipped
	return nil
}

// Navigate moves one card back or forward without grading. Moving past
// either end is a no-op. A card moved to is shown question side up.
func (s *Session) Navigate(dir domain.Direction) error {
	if err := s.requireActive(); err != nil {
		return err
	}

	switch dir {
	case domain.DirectionPrev:
		if s.index > 0 {
			s.index--
			s.flipped = false
		}
	case domain.DirectionNext:
		if s.index < len(s.deck.Cards)-1 {
			s.index++
			s.flipped = false
		}
	default:
		return domain.NewValidationError("direction", "must be prev or next")
	}
	return nil
}

// Grade records whether the current card was known, replacing any earlier
// grade for it in this pass. Grading the last card completes the session
// and writes mastery back to the deck; otherwise the session advances.
func (s *Session) Grade(ctx context.Context, known bool) error {
	if err := s.requireActive(); err != nil {
		return err
	}

	card := s.deck.Cards[s.index]

	if s.index < len(s.deck.Cards)-1 {
		s.results[card.ID] = known
		s.flipped = false
		s.index++
		return nil
	}

	final := make(map[string]bool, len(s.results)+1)
	for id, r := range s.results {
		final[id] = r
	}
	final[card.ID] = known

	return s.complete(ctx, final)
}

// Restart begins a new pass over the same deck. Mastery already written by
// an earlier completion stays.
func (s *Session) Restart() {
	s.index = 0
	s.flipped = false
	s.results = make(map[string]bool)
	s.done = false
	s.summary = domain.SessionSummary{}
}

// Summary returns the completion summary once the session is complete.
func (s *Session) Summary() (domain.SessionSummary, bool) {
	return s.summary, s.done
}

// complete writes the results back and switches to the complete state.
// On a write failure the session stays active on the last card with its
// earlier results, so the grade can be retried.
func (s *Session) complete(ctx context.Context, final map[string]bool) error {
	correct, incorrect := 0, 0
	for _, known := range final {
		if known {
			correct++
		} else {
			incorrect++
		}
	}

	// Apply to the latest stored deck so edits to cards this pass never
	// graded are not reverted.
	latest, err := s.svc.store.Get(s.deck.ID)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	for i, c := range latest.Cards {
		if known, ok := final[c.ID]; ok {
			latest.Cards[i].Mastered = known
		}
	}
	if err := s.svc.store.Update(ctx, latest); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	mastered := stats.MasteredCount(latest.Cards)
	s.summary = domain.SessionSummary{
		CorrectCount:      correct,
		IncorrectCount:    incorrect,
		Total:             len(latest.Cards),
		MasteredCount:     mastered,
		MasteryPercentage: stats.Percentage(mastered, len(latest.Cards)),
		Celebrate:         float64(correct)/float64(len(s.deck.Cards)) > celebrationThreshold,
	}
	s.results = final
	s.flipped = false
	s.done = true

	s.svc.log.InfoContext(ctx, "session complete",
		slog.String("deck_id", s.deck.ID),
		slog.Int("correct", correct),
		slog.Int("incorrect", incorrect),
	)

	if s.summary.Celebrate && s.svc.celebrator != nil {
		s.svc.celebrator.Celebrate(ctx, s.deck.ID, s.summary)
	}
	return nil
}

func (s *Session) requireActive() error {
	if s.done {
		return domain.NewValidationError("session", "session is complete")
	}
	return nil
}

// CardFace is the visible part of the current card. Back is empty until the
// card is flipped.
type CardFace struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back,omitempty"`
}

// Snapshot is a read-only view of a session for presentation.
type Snapshot struct {
	State     State                  `json:"state"`
	DeckID    string                 `json:"deckId"`
	DeckTitle string                 `json:"deckTitle"`
	Index     int                    `json:"index"`
	Total     int                    `json:"total"`
	Flipped   bool                   `json:"flipped"`
	Card      *CardFace              `json:"card,omitempty"`
	Progress  int                    `json:"progress"`
	Answered  int                    `json:"answered"`
	Summary   *domain.SessionSummary `json:"summary,omitempty"`
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:     s.State(),
		DeckID:    s.deck.ID,
		DeckTitle: s.deck.Title,
		Index:     s.index,
		Total:     len(s.deck.Cards),
		Answered:  len(s.results),
	}

	if s.done {
		summary := s.summary
		snap.Summary = &summary
		snap.Progress = 100
		return snap
	}

	card := s.deck.Cards[s.index]
	face := &CardFace{ID: card.ID, Front: card.Front}
	if s.flipped {
		face.Back = card.Back
	}
	snap.Card = face
	snap.Flipped = s.flipped
	snap.Progress = stats.Percentage(s.index+1, snap.Total)
	return snap
}
