// Package study implements the study-session state machine: one pass through
// a deck's cards with per-card grading and a single mastery write-back when
// the pass completes.
package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type deckStore interface {
	Get(id string) (domain.Deck, error)
	Update(ctx context.Context, deck domain.Deck) error
}

// Celebrator is notified when a pass finishes with a high score. It is a
// presentational hook and must not block.
type Celebrator interface {
	Celebrate(ctx context.Context, deckID string, summary domain.SessionSummary)
}

// CelebratorFunc adapts a function to Celebrator.
type CelebratorFunc func(ctx context.Context, deckID string, summary domain.SessionSummary)

// Celebrate calls f.
func (f CelebratorFunc) Celebrate(ctx context.Context, deckID string, summary domain.SessionSummary) {
	f(ctx, deckID, summary)
}

// celebrationThreshold is the share of a deck's cards that must be known
// for a completed pass to be celebrated.
const celebrationThreshold = 0.7

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service starts study sessions against the Deck Store.
type Service struct {
	store      deckStore
	celebrator Celebrator
	log        *slog.Logger
}

// NewService creates a new study service. celebrator may be nil.
func NewService(log *slog.Logger, store deckStore, celebrator Celebrator) *Service {
	return &Service{
		store:      store,
		celebrator: celebrator,
		log:        log.With("service", "study"),
	}
}

// Start opens a fresh session on the deck. Decks without cards cannot be
// studied.
func (s *Service) Start(ctx context.Context, deckID string) (*Session, error) {
	deck, err := s.store.Get(deckID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if len(deck.Cards) == 0 {
		return nil, domain.NewValidationError("deck", "deck has no cards to study")
	}

	s.log.InfoContext(ctx, "session started",
		slog.String("deck_id", deck.ID),
		slog.Int("cards", len(deck.Cards)),
	)

	return newSession(s, deck), nil
}
