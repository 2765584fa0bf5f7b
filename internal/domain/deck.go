package domain

import (
	"strings"
	"time"
)

// Flashcard is a front/back question-answer pair with a persisted mastery flag.
type Flashcard struct {
	ID       string
	Front    string
	Back     string
	Mastered bool
}

// IsBlank reports whether both faces are empty after trimming whitespace.
func (c Flashcard) IsBlank() bool {
	return strings.TrimSpace(c.Front) == "" && strings.TrimSpace(c.Back) == ""
}

// Deck is a named, ordered collection of flashcards.
// Insertion order of Cards is display and study order.
type Deck struct {
	ID          string
	Title       string
	Description string
	Cards       []Flashcard
	CreatedAt   time.Time
	ThemeColor  string
	Icon        string
}

// Clone returns a deep copy of the deck. Mutating the copy's Cards never
// affects the original.
func (d Deck) Clone() Deck {
	out := d
	if d.Cards != nil {
		out.Cards = make([]Flashcard, len(d.Cards))
		copy(out.Cards, d.Cards)
	}
	return out
}

// CardIndex returns the position of the card with the given id, or -1.
func (d Deck) CardIndex(cardID string) int {
	for i, c := range d.Cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// CloneDecks deep-copies a deck list.
func CloneDecks(decks []Deck) []Deck {
	if decks == nil {
		return nil
	}
	out := make([]Deck, len(decks))
	for i, d := range decks {
		out[i] = d.Clone()
	}
	return out
}

// CardContent is a flashcard without identity or mastery, as produced by
// the generation service.
type CardContent struct {
	Front string
	Back  string
}

// View identifies which screen of the application is active.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewCreateDeck   View = "create_deck"
	ViewEditDeck     View = "edit_deck"
	ViewStudySession View = "study_session"
	ViewDeckStats    View = "deck_stats"
	ViewGlobalStats  View = "global_stats"
)

// IsValid reports whether v is a known view.
func (v View) IsValid() bool {
	switch v {
	case ViewDashboard, ViewCreateDeck, ViewEditDeck, ViewStudySession, ViewDeckStats, ViewGlobalStats:
		return true
	}
	return false
}

// Direction is a study navigation direction.
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// IsValid reports whether d is prev or next.
func (d Direction) IsValid() bool {
	return d == DirectionPrev || d == DirectionNext
}
