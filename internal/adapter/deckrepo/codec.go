package deckrepo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// deckJSON is the persisted shape of a deck. Field names and the millisecond
// createdAt match blobs written by earlier versions of the app.
type deckJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cards       []cardJSON `json:"cards"`
	CreatedAt   int64      `json:"createdAt"`
	ThemeColor  string     `json:"themeColor"`
	Icon        string     `json:"icon"`
}

type cardJSON struct {
	ID       string `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	Mastered bool   `json:"mastered"`
}

// Encode serializes a deck list into the persisted JSON form.
func Encode(decks []domain.Deck) ([]byte, error) {
	out := make([]deckJSON, len(decks))
	for i, d := range decks {
		cards := make([]cardJSON, len(d.Cards))
		for j, c := range d.Cards {
			cards[j] = cardJSON{ID: c.ID, Front: c.Front, Back: c.Back, Mastered: c.Mastered}
		}
		out[i] = deckJSON{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Cards:       cards,
			CreatedAt:   d.CreatedAt.UnixMilli(),
			ThemeColor:  d.ThemeColor,
			Icon:        d.Icon,
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode decks: %w", err)
	}
	return data, nil
}

// Decode parses the persisted JSON form. Anything that is not an array of
// deck objects with ids, or that holds cards without ids, is rejected.
func Decode(data []byte) ([]domain.Deck, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("decode decks: not a JSON array")
	}

	var raw []deckJSON
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode decks: %w", err)
	}

	decks := make([]domain.Deck, len(raw))
	for i, d := range raw {
		if d.ID == "" {
			return nil, fmt.Errorf("decode decks: deck %d has no id", i)
		}
		cards := make([]domain.Flashcard, len(d.Cards))
		for j, c := range d.Cards {
			if c.ID == "" {
				return nil, fmt.Errorf("decode decks: deck %s card %d has no id", d.ID, j)
			}
			cards[j] = domain.Flashcard{ID: c.ID, Front: c.Front, Back: c.Back, Mastered: c.Mastered}
		}
		decks[i] = domain.Deck{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Cards:       cards,
			CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
			ThemeColor:  d.ThemeColor,
			Icon:        d.Icon,
		}
	}

	return decks, nil
}
