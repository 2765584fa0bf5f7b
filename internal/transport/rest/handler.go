package rest

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/flashmind/internal/controller"
	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/editor"
	"github.com/heartmarshall/flashmind/internal/service/study"
)

// appController is the command surface the handlers drive.
type appController interface {
	State() controller.State
	Dashboard() controller.Dashboard
	Exit() controller.State
	CreateDeck(ctx context.Context, in editor.CreateDeckInput) (domain.Deck, error)
	GenerateDeck(ctx context.Context, in controller.GenerateInput) (domain.Deck, error)
	DeleteDeck(ctx context.Context, id string, confirmed bool) error
	DeckStats(id string) (domain.DeckStats, error)
	GlobalStats() domain.GlobalStats

	EditDeck(id string) (domain.Deck, error)
	Draft() (domain.Deck, error)
	UpdateDraft(title, description *string) (domain.Deck, error)
	AddDraftCard() (domain.Flashcard, error)
	EditDraftCard(cardID string, front, back *string) (domain.Deck, error)
	RemoveDraftCard(cardID string) (domain.Deck, error)
	SaveDraft(ctx context.Context) (domain.Deck, error)
	CancelDraft() controller.State

	StartStudy(ctx context.Context, id string) (study.Snapshot, error)
	Session() (study.Snapshot, error)
	Flip() (study.Snapshot, error)
	Navigate(dir domain.Direction) (study.Snapshot, error)
	Grade(ctx context.Context, known bool) (study.Snapshot, error)
	Restart() (study.Snapshot, error)
}

// Handler serves the /api endpoints.
type Handler struct {
	ctrl         appController
	defaultCount int
	log          *slog.Logger
}

// NewHandler creates a Handler. defaultCount is used when a generation
// request omits the card count.
func NewHandler(ctrl appController, defaultCount int, logger *slog.Logger) *Handler {
	return &Handler{ctrl: ctrl, defaultCount: defaultCount, log: logger.With("handler", "api")}
}
