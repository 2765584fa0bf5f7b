// Package editor implements deck creation and the edit-then-save flow over
// private working copies.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashmind/internal/domain"
)

type deckStore interface {
	Get(id string) (domain.Deck, error)
	Create(ctx context.Context, deck domain.Deck) error
	Update(ctx context.Context, deck domain.Deck) error
}

// Service creates decks and commits edited working copies.
type Service struct {
	store deckStore
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new editor service.
func NewService(log *slog.Logger, store deckStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "editor"),
		now:   time.Now,
	}
}

// Open returns a working copy of the stored deck.
func (s *Service) Open(deckID string) (*Draft, error) {
	deck, err := s.store.Get(deckID)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	return Open(deck), nil
}

// Save validates the working copy and replaces the stored deck with it.
// On a validation error nothing reaches the store. A deck deleted while it
// was being edited yields domain.ErrNotFound.
func (s *Service) Save(ctx context.Context, draft *Draft) (domain.Deck, error) {
	deck, err := draft.Build()
	if err != nil {
		return domain.Deck{}, err
	}

	if _, err := s.store.Get(deck.ID); err != nil {
		return domain.Deck{}, fmt.Errorf("save deck: %w", err)
	}

	if err := s.store.Update(ctx, deck); err != nil {
		return domain.Deck{}, fmt.Errorf("save deck: %w", err)
	}

	s.log.InfoContext(ctx, "deck saved",
		slog.String("deck_id", deck.ID),
		slog.Int("cards", len(deck.Cards)),
	)
	return deck, nil
}

// Create builds a deck from user input and prepends it to the store.
// Empty cards are dropped; a deck without cards gets one blank card so the
// editor has a row to fill in.
func (s *Service) Create(ctx context.Context, input CreateDeckInput) (domain.Deck, error) {
	if err := input.Validate(); err != nil {
		return domain.Deck{}, err
	}

	deck := domain.Deck{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Cards:       newCards(input.Cards),
		CreatedAt:   s.timestamp(),
		ThemeColor:  orDefault(input.ThemeColor, defaultThemeColor),
		Icon:        orDefault(input.Icon, defaultIcon),
	}
	if len(deck.Cards) == 0 {
		deck.Cards = []domain.Flashcard{{ID: uuid.NewString()}}
	}

	if err := s.store.Create(ctx, deck); err != nil {
		return domain.Deck{}, fmt.Errorf("create deck: %w", err)
	}
	return deck, nil
}

// CreateGenerated builds a deck from generated card content.
func (s *Service) CreateGenerated(ctx context.Context, input GeneratedDeckInput) (domain.Deck, error) {
	if err := input.Validate(); err != nil {
		return domain.Deck{}, err
	}

	topic := strings.TrimSpace(input.Topic)
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = topic
	}

	deck := domain.Deck{
		ID:          uuid.NewString(),
		Title:       title,
		Description: "Generated from topic: " + topic,
		Cards:       newCards(input.Cards),
		CreatedAt:   s.timestamp(),
		ThemeColor:  "violet",
		Icon:        "sparkles",
	}
	if len(deck.Cards) == 0 {
		return domain.Deck{}, domain.NewValidationError("cards", "generated cards are all empty")
	}

	if err := s.store.Create(ctx, deck); err != nil {
		return domain.Deck{}, fmt.Errorf("create generated deck: %w", err)
	}
	return deck, nil
}

// timestamp is millisecond precision, which is what the blob format keeps.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func newCards(contents []domain.CardContent) []domain.Flashcard {
	cards := make([]domain.Flashcard, 0, len(contents))
	for _, c := range contents {
		card := domain.Flashcard{
			ID:    uuid.NewString(),
			Front: strings.TrimSpace(c.Front),
			Back:  strings.TrimSpace(c.Back),
		}
		if card.IsBlank() {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
