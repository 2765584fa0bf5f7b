// Package controller holds the application's navigation state and routes
// user commands to the deck, editor, study, stats and generation services.
// Every command is serialized; the model call made by GenerateDeck is the
// only work done outside the lock.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/editor"
	"github.com/heartmarshall/flashmind/internal/service/generate"
	"github.com/heartmarshall/flashmind/internal/service/stats"
	"github.com/heartmarshall/flashmind/internal/service/study"
)

var (
	// ErrConfirmationRequired is returned by DeleteDeck without confirmation.
	ErrConfirmationRequired = domain.NewValidationError("confirm", "deletion must be confirmed")

	// ErrGenerationDiscarded is returned when the user navigated away while
	// the model call was running.
	ErrGenerationDiscarded = fmt.Errorf("generation result discarded: %w", domain.ErrConflict)

	errGenerationInFlight = fmt.Errorf("a generation is already running: %w", domain.ErrConflict)
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type deckStore interface {
	List() []domain.Deck
	Get(id string) (domain.Deck, error)
	Delete(ctx context.Context, id string) error
	Warning() string
}

type deckEditor interface {
	Open(deckID string) (*editor.Draft, error)
	Save(ctx context.Context, draft *editor.Draft) (domain.Deck, error)
	Create(ctx context.Context, input editor.CreateDeckInput) (domain.Deck, error)
	CreateGenerated(ctx context.Context, input editor.GeneratedDeckInput) (domain.Deck, error)
}

type sessionStarter interface {
	Start(ctx context.Context, deckID string) (*study.Session, error)
}

type cardGenerator interface {
	Generate(ctx context.Context, in generate.Input) ([]domain.CardContent, error)
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

// State is the navigation state visible to the user surface.
type State struct {
	View           domain.View `json:"view"`
	ActiveDeckID   string      `json:"activeDeckId,omitempty"`
	StorageWarning string      `json:"storageWarning,omitempty"`
	Generating     bool        `json:"generating"`
}

// DeckTile is one deck as listed on the dashboard.
type DeckTile struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ThemeColor        string    `json:"themeColor"`
	Icon              string    `json:"icon"`
	CreatedAt         time.Time `json:"createdAt"`
	CardCount         int       `json:"cardCount"`
	MasteredCount     int       `json:"masteredCount"`
	MasteryPercentage int       `json:"masteryPercentage"`
}

// Dashboard is the deck listing.
type Dashboard struct {
	Decks          []DeckTile `json:"decks"`
	StorageWarning string     `json:"storageWarning,omitempty"`
	Generating     bool       `json:"generating"`
}

// GenerateInput is a request to create a deck from a topic.
type GenerateInput struct {
	Topic string
	Count int
	Title string
}

// ---------------------------------------------------------------------------
// Controller
// ---------------------------------------------------------------------------

// Controller is the single source of navigation state.
type Controller struct {
	store     deckStore
	editor    deckEditor
	study     sessionStarter
	generator cardGenerator
	log       *slog.Logger

	mu           sync.Mutex
	view         domain.View
	activeDeckID string
	draft        *editor.Draft
	session      *study.Session
	epoch        uint64
	generating   bool
}

// New creates a Controller showing the dashboard. generator may be nil, in
// which case GenerateDeck always fails with a GenerationError.
func New(log *slog.Logger, store deckStore, ed deckEditor, st sessionStarter, generator cardGenerator) *Controller {
	return &Controller{
		store:     store,
		editor:    ed,
		study:     st,
		generator: generator,
		log:       log.With("component", "controller"),
		view:      domain.ViewDashboard,
	}
}

// State returns the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		View:           c.view,
		ActiveDeckID:   c.activeDeckID,
		StorageWarning: c.store.Warning(),
		Generating:     c.generating,
	}
}

// Dashboard lists every deck with its mastery. It does not navigate.
func (c *Controller) Dashboard() Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()

	decks := c.store.List()
	out := Dashboard{
		Decks:          make([]DeckTile, 0, len(decks)),
		StorageWarning: c.store.Warning(),
		Generating:     c.generating,
	}
	for _, d := range decks {
		mastered := stats.MasteredCount(d.Cards)
		out.Decks = append(out.Decks, DeckTile{
			ID:                d.ID,
			Title:             d.Title,
			Description:       d.Description,
			ThemeColor:        d.ThemeColor,
			Icon:              d.Icon,
			CreatedAt:         d.CreatedAt,
			CardCount:         len(d.Cards),
			MasteredCount:     mastered,
			MasteryPercentage: stats.Percentage(mastered, len(d.Cards)),
		})
	}
	return out
}

// Exit returns to the dashboard, dropping any draft or session.
func (c *Controller) Exit() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigate(domain.ViewDashboard, "")
	return c.stateLocked()
}

// OpenCreate shows the deck creation form.
func (c *Controller) OpenCreate() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigate(domain.ViewCreateDeck, "")
	return c.stateLocked()
}

// CreateDeck creates a deck by hand and opens it in the editor.
func (c *Controller) CreateDeck(ctx context.Context, in editor.CreateDeckInput) (domain.Deck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deck, err := c.editor.Create(ctx, in)
	if err != nil {
		return domain.Deck{}, err
	}
	if err := c.openEditorLocked(deck.ID); err != nil {
		return domain.Deck{}, err
	}
	return deck, nil
}

// GenerateDeck asks the model for cards, stores them as a new deck and opens
// it in the editor. Only one generation runs at a time. If the user
// navigates while the model call is running the result is dropped and
// ErrGenerationDiscarded is returned.
func (c *Controller) GenerateDeck(ctx context.Context, in GenerateInput) (domain.Deck, error) {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return domain.Deck{}, errGenerationInFlight
	}
	if c.generator == nil {
		c.mu.Unlock()
		return domain.Deck{}, domain.NewGenerationError("no generation provider configured", nil)
	}
	if c.view != domain.ViewCreateDeck {
		c.navigate(domain.ViewCreateDeck, "")
	}
	epoch := c.epoch
	c.generating = true
	c.mu.Unlock()

	contents, genErr := c.runGenerator(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()

	if genErr != nil {
		return domain.Deck{}, genErr
	}
	if epoch != c.epoch {
		c.log.InfoContext(ctx, "generation result discarded", slog.String("topic", in.Topic))
		return domain.Deck{}, ErrGenerationDiscarded
	}

	deck, err := c.editor.CreateGenerated(ctx, editor.GeneratedDeckInput{
		Topic: in.Topic,
		Title: in.Title,
		Cards: contents,
	})
	if err != nil {
		return domain.Deck{}, err
	}
	if err := c.openEditorLocked(deck.ID); err != nil {
		return domain.Deck{}, err
	}

	c.log.InfoContext(ctx, "deck generated",
		slog.String("deck_id", deck.ID),
		slog.Int("cards", len(deck.Cards)),
	)
	return deck, nil
}

// runGenerator calls the model without holding the lock. The generating
// flag is cleared even if the provider panics.
func (c *Controller) runGenerator(ctx context.Context, in GenerateInput) ([]domain.CardContent, error) {
	defer func() {
		c.mu.Lock()
		c.generating = false
		c.mu.Unlock()
	}()
	return c.generator.Generate(ctx, generate.Input{Topic: in.Topic, Count: in.Count})
}

// DeleteDeck removes a deck once the user has confirmed. Deleting the deck
// that is open in the editor or a session, or a deck that no longer exists,
// returns to the dashboard.
func (c *Controller) DeleteDeck(ctx context.Context, id string, confirmed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !confirmed {
		return ErrConfirmationRequired
	}
	if _, err := c.store.Get(id); err != nil {
		return c.notFoundLocked(err)
	}
	if err := c.store.Delete(ctx, id); err != nil {
		return c.notFoundLocked(err)
	}

	if c.activeDeckID == id {
		c.navigate(domain.ViewDashboard, "")
	}
	c.log.InfoContext(ctx, "deck deleted", slog.String("deck_id", id))
	return nil
}

// DeckStats shows the statistics of one deck.
func (c *Controller) DeckStats(id string) (domain.DeckStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deck, err := c.store.Get(id)
	if err != nil {
		return domain.DeckStats{}, c.notFoundLocked(err)
	}
	c.navigate(domain.ViewDeckStats, id)
	return stats.ForDeck(deck), nil
}

// GlobalStats shows the statistics across all decks.
func (c *Controller) GlobalStats() domain.GlobalStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigate(domain.ViewGlobalStats, "")
	return stats.Global(c.store.List())
}

// navigate switches view. Any draft or session is dropped and a running
// generation will be discarded when it returns.
func (c *Controller) navigate(view domain.View, deckID string) {
	c.view = view
	c.activeDeckID = deckID
	c.draft = nil
	c.session = nil
	c.epoch++
}

// notFoundLocked returns to the dashboard when err says the active deck is
// gone.
func (c *Controller) notFoundLocked(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		c.navigate(domain.ViewDashboard, "")
	}
	return err
}
