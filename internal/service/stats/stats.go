// Package stats derives mastery statistics from deck state. Every function
// is pure: nothing is stored between calls.
package stats

import (
	"math"
	"sort"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// Percentage returns round(part/total*100), or 0 when total is 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// MasteredCount counts the cards marked mastered.
func MasteredCount(cards []domain.Flashcard) int {
	n := 0
	for _, c := range cards {
		if c.Mastered {
			n++
		}
	}
	return n
}

// FocusList returns the cards not yet mastered, in their original order.
func FocusList(cards []domain.Flashcard) []domain.Flashcard {
	out := make([]domain.Flashcard, 0, len(cards))
	for _, c := range cards {
		if !c.Mastered {
			out = append(out, c)
		}
	}
	return out
}

// ForDeck computes the statistics of one deck.
func ForDeck(deck domain.Deck) domain.DeckStats {
	total := len(deck.Cards)
	mastered := MasteredCount(deck.Cards)

	return domain.DeckStats{
		DeckID:            deck.ID,
		Title:             deck.Title,
		MasteredCount:     mastered,
		LearningCount:     total - mastered,
		Total:             total,
		MasteryPercentage: Percentage(mastered, total),
		Focus:             FocusList(deck.Cards),
	}
}

// Global aggregates every deck. The per-deck breakdown is ordered by
// mastery percentage ascending, then title, then id, so equal inputs always
// produce the same order.
func Global(decks []domain.Deck) domain.GlobalStats {
	out := domain.GlobalStats{
		DeckCount: len(decks),
		Decks:     make([]domain.DeckSummary, 0, len(decks)),
	}

	for _, d := range decks {
		total := len(d.Cards)
		mastered := MasteredCount(d.Cards)

		out.MasteredCount += mastered
		out.Total += total
		out.Decks = append(out.Decks, domain.DeckSummary{
			DeckID:            d.ID,
			Title:             d.Title,
			MasteredCount:     mastered,
			Total:             total,
			MasteryPercentage: Percentage(mastered, total),
		})
	}

	out.LearningCount = out.Total - out.MasteredCount
	out.MasteryPercentage = Percentage(out.MasteredCount, out.Total)

	sort.SliceStable(out.Decks, func(i, j int) bool {
		a, b := out.Decks[i], out.Decks[j]
		if a.MasteryPercentage != b.MasteryPercentage {
			return a.MasteryPercentage < b.MasteryPercentage
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.DeckID < b.DeckID
	})

	return out
}
