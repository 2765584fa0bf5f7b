package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// Draft is a private working copy of a deck. Nothing done to a Draft is
// visible in the Deck Store until Service.Save commits it, so dropping the
// Draft cancels the edit.
type Draft struct {
	deck domain.Deck
}

// Open starts a working copy of deck.
func Open(deck domain.Deck) *Draft {
	return &Draft{deck: deck.Clone()}
}

// DeckID returns the id of the deck being edited.
func (d *Draft) DeckID() string { return d.deck.ID }

// Deck returns a copy of the working state, unvalidated.
func (d *Draft) Deck() domain.Deck { return d.deck.Clone() }

// SetTitle replaces the working title. Validation happens on save.
func (d *Draft) SetTitle(title string) { d.deck.Title = title }

// SetDescription replaces the working description.
func (d *Draft) SetDescription(description string) { d.deck.Description = description }

// AddCard appends an empty, unmastered card and returns it.
func (d *Draft) AddCard() domain.Flashcard {
	card := domain.Flashcard{ID: uuid.NewString()}
	d.deck.Cards = append(d.deck.Cards, card)
	return card
}

// EditCard updates the faces of a card. Nil leaves a face unchanged.
func (d *Draft) EditCard(cardID string, front, back *string) error {
	i := d.deck.CardIndex(cardID)
	if i < 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}
	if front != nil {
		d.deck.Cards[i].Front = *front
	}
	if back != nil {
		d.deck.Cards[i].Back = *back
	}
	return nil
}

// RemoveCard deletes a card from the working copy. A deck must keep at
// least one card, so removing the last one is rejected.
func (d *Draft) RemoveCard(cardID string) error {
	i := d.deck.CardIndex(cardID)
	if i < 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}
	if len(d.deck.Cards) <= 1 {
		return domain.NewValidationError("cards", "a deck must have at least one card")
	}
	d.deck.Cards = append(d.deck.Cards[:i], d.deck.Cards[i+1:]...)
	return nil
}

// Build validates the working copy and returns the deck as it would be
// saved: fully-empty cards are dropped, mastery flags are kept.
func (d *Draft) Build() (domain.Deck, error) {
	var errs []domain.FieldError

	if strings.TrimSpace(d.deck.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}

	cards := make([]domain.Flashcard, 0, len(d.deck.Cards))
	for _, c := range d.deck.Cards {
		if !c.IsBlank() {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		errs = append(errs, domain.FieldError{Field: "cards", Message: "at least one card with content required"})
	}

	if len(errs) > 0 {
		return domain.Deck{}, domain.NewValidationErrors(errs)
	}

	out := d.deck.Clone()
	out.Cards = cards
	return out, nil
}
