package rest

import (
	"time"

	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/study"
)

type cardResponse struct {
	ID       string `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	Mastered bool   `json:"mastered"`
}

type deckResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ThemeColor  string         `json:"themeColor"`
	Icon        string         `json:"icon"`
	CreatedAt   time.Time      `json:"createdAt"`
	Cards       []cardResponse `json:"cards"`
}

type deckStatsResponse struct {
	DeckID            string         `json:"deckId"`
	Title             string         `json:"title"`
	MasteredCount     int            `json:"masteredCount"`
	LearningCount     int            `json:"learningCount"`
	Total             int            `json:"total"`
	MasteryPercentage int            `json:"masteryPercentage"`
	Focus             []cardResponse `json:"focus"`
}

type deckSummaryResponse struct {
	DeckID            string `json:"deckId"`
	Title             string `json:"title"`
	MasteredCount     int    `json:"masteredCount"`
	Total             int    `json:"total"`
	MasteryPercentage int    `json:"masteryPercentage"`
}

type globalStatsResponse struct {
	DeckCount         int                   `json:"deckCount"`
	MasteredCount     int                   `json:"masteredCount"`
	LearningCount     int                   `json:"learningCount"`
	Total             int                   `json:"total"`
	MasteryPercentage int                   `json:"masteryPercentage"`
	Decks             []deckSummaryResponse `json:"decks"`
}

type summaryResponse struct {
	CorrectCount      int  `json:"correctCount"`
	IncorrectCount    int  `json:"incorrectCount"`
	Total             int  `json:"total"`
	MasteredCount     int  `json:"masteredCount"`
	MasteryPercentage int  `json:"masteryPercentage"`
	Celebrate         bool `json:"celebrate"`
}

type sessionResponse struct {
	State     study.State      `json:"state"`
	DeckID    string           `json:"deckId"`
	DeckTitle string           `json:"deckTitle"`
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Flipped   bool             `json:"flipped"`
	Card      *study.CardFace  `json:"card,omitempty"`
	Progress  int              `json:"progress"`
	Answered  int              `json:"answered"`
	Summary   *summaryResponse `json:"summary,omitempty"`
}

func toCardResponse(c domain.Flashcard) cardResponse {
	return cardResponse{ID: c.ID, Front: c.Front, Back: c.Back, Mastered: c.Mastered}
}

func toCardResponses(cards []domain.Flashcard) []cardResponse {
	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = toCardResponse(c)
	}
	return out
}

func toDeckResponse(d domain.Deck) deckResponse {
	return deckResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ThemeColor:  d.ThemeColor,
		Icon:        d.Icon,
		CreatedAt:   d.CreatedAt,
		Cards:       toCardResponses(d.Cards),
	}
}

func toDeckStatsResponse(s domain.DeckStats) deckStatsResponse {
	return deckStatsResponse{
		DeckID:            s.DeckID,
		Title:             s.Title,
		MasteredCount:     s.MasteredCount,
		LearningCount:     s.LearningCount,
		Total:             s.Total,
		MasteryPercentage: s.MasteryPercentage,
		Focus:             toCardResponses(s.Focus),
	}
}

func toGlobalStatsResponse(s domain.GlobalStats) globalStatsResponse {
	out := globalStatsResponse{
		DeckCount:         s.DeckCount,
		MasteredCount:     s.MasteredCount,
		LearningCount:     s.LearningCount,
		Total:             s.Total,
		MasteryPercentage: s.MasteryPercentage,
		Decks:             make([]deckSummaryResponse, len(s.Decks)),
	}
	for i, d := range s.Decks {
		out.Decks[i] = deckSummaryResponse(d)
	}
	return out
}

func toSessionResponse(s study.Snapshot) sessionResponse {
	out := sessionResponse{
		State:     s.State,
		DeckID:    s.DeckID,
		DeckTitle: s.DeckTitle,
		Index:     s.Index,
		Total:     s.Total,
		Flipped:   s.Flipped,
		Card:      s.Card,
		Progress:  s.Progress,
		Answered:  s.Answered,
	}
	if s.Summary != nil {
		sum := summaryResponse(*s.Summary)
		out.Summary = &sum
	}
	return out
}
