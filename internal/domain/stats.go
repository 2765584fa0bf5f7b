package domain

// DeckStats holds mastery statistics for a single deck.
type DeckStats struct {
	DeckID            string
	Title             string
	MasteredCount     int
	LearningCount     int
	Total             int
	MasteryPercentage int
	// Focus lists the cards not yet mastered, in deck order.
	Focus []Flashcard
}

// DeckSummary is one row of the global statistics breakdown.
type DeckSummary struct {
	DeckID            string
	Title             string
	MasteredCount     int
	Total             int
	MasteryPercentage int
}

// GlobalStats aggregates mastery across all decks.
type GlobalStats struct {
	DeckCount         int
	MasteredCount     int
	LearningCount     int
	Total             int
	MasteryPercentage int
	Decks             []DeckSummary
}

// SessionSummary is produced when a study session completes.
type SessionSummary struct {
	CorrectCount      int
	IncorrectCount    int
	Total             int
	MasteredCount     int
	MasteryPercentage int
	Celebrate         bool
}
