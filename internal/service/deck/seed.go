package deck

import (
	"time"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// DefaultDecks returns the deck list used when nothing has been persisted yet.
func DefaultDecks(now time.Time) []domain.Deck {
	return []domain.Deck{
		{
			ID:          "1",
			Title:       "JavaScript Basics",
			Description: "Core concepts of JS programming",
			Cards: []domain.Flashcard{
				{
					ID:    "1a",
					Front: "What is a closure?",
					Back:  "A function bundled with its lexical environment.",
				},
				{
					ID:    "1b",
					Front: "What is hoisting?",
					Back:  "Variable and function declarations are moved to the top of their scope.",
				},
			},
			CreatedAt:  now.UTC().Truncate(time.Millisecond),
			ThemeColor: "indigo",
			Icon:       "code",
		},
	}
}
