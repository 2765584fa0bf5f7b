package controller

import (
	"context"

	"github.com/heartmarshall/flashmind/internal/domain"
)

var errNoDraft = domain.NewValidationError("view", "no deck is open in the editor")

// EditDeck opens a working copy of the deck in the editor.
func (c *Controller) EditDeck(id string) (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.openEditorLocked(id); err != nil {
		return domain.Deck{}, err
	}
	return c.draft.Deck(), nil
}

func (c *Controller) openEditorLocked(id string) error {
	draft, err := c.editor.Open(id)
	if err != nil {
		return c.notFoundLocked(err)
	}
	c.navigate(domain.ViewEditDeck, id)
	c.draft = draft
	return nil
}

// Draft returns the working copy being edited.
func (c *Controller) Draft() (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Deck{}, errNoDraft
	}
	return c.draft.Deck(), nil
}

// UpdateDraft changes the title or description of the working copy. Nil
// fields are left alone.
func (c *Controller) UpdateDraft(title, description *string) (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Deck{}, errNoDraft
	}
	if title != nil {
		c.draft.SetTitle(*title)
	}
	if description != nil {
		c.draft.SetDescription(*description)
	}
	return c.draft.Deck(), nil
}

// AddDraftCard appends an empty card to the working copy.
func (c *Controller) AddDraftCard() (domain.Flashcard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Flashcard{}, errNoDraft
	}
	return c.draft.AddCard(), nil
}

// EditDraftCard changes one card of the working copy.
func (c *Controller) EditDraftCard(cardID string, front, back *string) (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Deck{}, errNoDraft
	}
	if err := c.draft.EditCard(cardID, front, back); err != nil {
		return domain.Deck{}, err
	}
	return c.draft.Deck(), nil
}

// RemoveDraftCard deletes one card from the working copy. The last card
// cannot be removed.
func (c *Controller) RemoveDraftCard(cardID string) (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Deck{}, errNoDraft
	}
	if err := c.draft.RemoveCard(cardID); err != nil {
		return domain.Deck{}, err
	}
	return c.draft.Deck(), nil
}

// SaveDraft commits the working copy and returns to the dashboard. On a
// validation error the editor stays open with the draft intact.
func (c *Controller) SaveDraft(ctx context.Context) (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Deck{}, errNoDraft
	}
	deck, err := c.editor.Save(ctx, c.draft)
	if err != nil {
		return domain.Deck{}, c.notFoundLocked(err)
	}
	c.navigate(domain.ViewDashboard, "")
	return deck, nil
}

// CancelDraft discards the working copy and returns to the dashboard.
func (c *Controller) CancelDraft() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigate(domain.ViewDashboard, "")
	return c.stateLocked()
}
