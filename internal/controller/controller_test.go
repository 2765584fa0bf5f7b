package controller_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashmind/internal/adapter/blob/memory"
	"github.com/heartmarshall/flashmind/internal/adapter/deckrepo"
	"github.com/heartmarshall/flashmind/internal/controller"
	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/deck"
	"github.com/heartmarshall/flashmind/internal/service/editor"
	"github.com/heartmarshall/flashmind/internal/service/generate"
	"github.com/heartmarshall/flashmind/internal/service/study"
)

// completerStub answers with a fixed reply. When gate is set, Complete
// signals started and then blocks until gate is closed. panics makes that
// many calls panic before it starts answering.
type completerStub struct {
	reply   string
	err     error
	started chan struct{}
	gate    chan struct{}
	panics  int
}

func (s *completerStub) Complete(ctx context.Context, _, _ string) (string, error) {
	if s.panics > 0 {
		s.panics--
		panic("provider exploded")
	}
	if s.gate != nil {
		s.started <- struct{}{}
		select {
		case <-s.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

type fixture struct {
	ctrl  *controller.Controller
	store *deck.Store
	blobs *memory.Store
}

func newFixture(t *testing.T, c generate.Completer) fixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	blobs := memory.New()
	repo := deckrepo.New(blobs, "")
	store := deck.NewStore(log, repo, repo)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	var gen *generate.Service
	if c != nil {
		gen = generate.NewService(log, c, generate.MaxCount)
	}

	var ctrl *controller.Controller
	if gen != nil {
		ctrl = controller.New(log, store, editor.NewService(log, store), study.NewService(log, store, nil), gen)
	} else {
		ctrl = controller.New(log, store, editor.NewService(log, store), study.NewService(log, store, nil), nil)
	}
	return fixture{ctrl: ctrl, store: store, blobs: blobs}
}

func TestController_StartsOnDashboardWithSeed(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)

	dash := f.ctrl.Dashboard()
	require.Len(t, dash.Decks, 1)
	assert.Equal(t, "JavaScript Basics", dash.Decks[0].Title)
	assert.Equal(t, 2, dash.Decks[0].CardCount)
	assert.Equal(t, 0, dash.Decks[0].MasteryPercentage)
	assert.Empty(t, dash.StorageWarning)
}

func TestController_CreateDeckOpensEditor(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	f.ctrl.OpenCreate()
	assert.Equal(t, domain.ViewCreateDeck, f.ctrl.State().View)

	created, err := f.ctrl.CreateDeck(ctx, editor.CreateDeckInput{
		Title: "Go",
		Cards: []domain.CardContent{{Front: "chan", Back: "pipe"}},
	})
	require.NoError(t, err)

	st := f.ctrl.State()
	assert.Equal(t, domain.ViewEditDeck, st.View)
	assert.Equal(t, created.ID, st.ActiveDeckID)

	dash := f.ctrl.Dashboard()
	require.Len(t, dash.Decks, 2)
	assert.Equal(t, created.ID, dash.Decks[0].ID, "new deck is listed first")
}

func TestController_CreateDeckValidationKeepsView(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.ctrl.OpenCreate()
	puts := f.blobs.Puts()

	_, err := f.ctrl.CreateDeck(context.Background(), editor.CreateDeckInput{Title: "  "})
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, domain.ViewCreateDeck, f.ctrl.State().View)
	assert.Equal(t, puts, f.blobs.Puts())
}

func TestController_EditSaveFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	draft, err := f.ctrl.EditDeck("1")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewEditDeck, f.ctrl.State().View)

	title := "JS Basics"
	_, err = f.ctrl.UpdateDraft(&title, nil)
	require.NoError(t, err)

	card, err := f.ctrl.AddDraftCard()
	require.NoError(t, err)
	front, back := "What is a promise?", "A placeholder for a future value."
	_, err = f.ctrl.EditDraftCard(card.ID, &front, &back)
	require.NoError(t, err)

	// Stored deck is untouched until save.
	stored, err := f.store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, draft.Title, stored.Title)

	saved, err := f.ctrl.SaveDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "JS Basics", saved.Title)
	assert.Len(t, saved.Cards, 3)
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)

	_, err = f.ctrl.Draft()
	assert.ErrorIs(t, err, domain.ErrValidation, "draft is gone after save")
}

func TestController_SaveEmptyTitleStaysInEditor(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.ctrl.EditDeck("1")
	require.NoError(t, err)
	empty := "   "
	_, err = f.ctrl.UpdateDraft(&empty, nil)
	require.NoError(t, err)

	puts := f.blobs.Puts()
	_, err = f.ctrl.SaveDraft(context.Background())
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, domain.ViewEditDeck, f.ctrl.State().View)
	assert.Equal(t, puts, f.blobs.Puts())

	d, err := f.ctrl.Draft()
	require.NoError(t, err)
	assert.Equal(t, "   ", d.Title)
}

func TestController_CancelDraftDiscards(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.ctrl.EditDeck("1")
	require.NoError(t, err)
	title := "changed"
	_, err = f.ctrl.UpdateDraft(&title, nil)
	require.NoError(t, err)

	f.ctrl.CancelDraft()

	stored, err := f.store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "JavaScript Basics", stored.Title)
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)
}

func TestController_RemoveLastDraftCardRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.ctrl.EditDeck("1")
	require.NoError(t, err)

	_, err = f.ctrl.RemoveDraftCard("1a")
	require.NoError(t, err)
	_, err = f.ctrl.RemoveDraftCard("1b")
	require.ErrorIs(t, err, domain.ErrValidation)

	d, err := f.ctrl.Draft()
	require.NoError(t, err)
	assert.Len(t, d.Cards, 1)
}

func TestController_UnknownDeckReturnsToDashboard(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.ctrl.GlobalStats()

	_, err := f.ctrl.EditDeck("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)

	f.ctrl.GlobalStats()
	_, err = f.ctrl.StartStudy(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)

	f.ctrl.GlobalStats()
	_, err = f.ctrl.DeckStats("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)
}

func TestController_StudyFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	snap, err := f.ctrl.StartStudy(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewStudySession, f.ctrl.State().View)
	assert.Equal(t, 2, snap.Total)

	snap, err = f.ctrl.Flip()
	require.NoError(t, err)
	assert.True(t, snap.Flipped)
	assert.NotEmpty(t, snap.Card.Back)

	_, err = f.ctrl.Grade(ctx, true)
	require.NoError(t, err)
	snap, err = f.ctrl.Grade(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, study.StateComplete, snap.State)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 100, snap.Summary.MasteryPercentage)
	assert.True(t, snap.Summary.Celebrate)

	stats, err := f.ctrl.DeckStats("1")
	require.NoError(t, err)
	assert.Equal(t, 100, stats.MasteryPercentage)
	assert.Empty(t, stats.Focus)

	_, err = f.ctrl.Session()
	assert.ErrorIs(t, err, domain.ErrValidation, "leaving the session drops it")
}

func TestController_SessionCommandsWithoutSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	_, err := f.ctrl.Flip()
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.ctrl.Navigate(domain.DirectionNext)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.ctrl.Grade(context.Background(), true)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.ctrl.Restart()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestController_DeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	err := f.ctrl.DeleteDeck(ctx, "1", false)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, f.ctrl.Dashboard().Decks, 1)

	require.NoError(t, f.ctrl.DeleteDeck(ctx, "1", true))
	assert.Empty(t, f.ctrl.Dashboard().Decks)

	err = f.ctrl.DeleteDeck(ctx, "1", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestController_DeleteActiveDeckLeavesView(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.ctrl.StartStudy(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, f.ctrl.DeleteDeck(ctx, "1", true))

	st := f.ctrl.State()
	assert.Equal(t, domain.ViewDashboard, st.View)
	assert.Empty(t, st.ActiveDeckID)
	_, err = f.ctrl.Session()
	assert.Error(t, err)
}

func TestController_DeleteMissingDeckReturnsToDashboard(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.ctrl.GlobalStats()

	err := f.ctrl.DeleteDeck(context.Background(), "missing", true)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)
	assert.Len(t, f.ctrl.Dashboard().Decks, 1)
}

func TestController_GlobalStats(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	g := f.ctrl.GlobalStats()
	assert.Equal(t, domain.ViewGlobalStats, f.ctrl.State().View)
	assert.Equal(t, 1, g.DeckCount)
	assert.Equal(t, 2, g.Total)
}

// ---------------------------------------------------------------------------
// Generation
// ---------------------------------------------------------------------------

const twoCards = `[{"front":"What is a goroutine?","back":"A lightweight thread."},{"front":"What is a channel?","back":"A typed pipe."}]`

func TestController_GenerateDeck(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &completerStub{reply: twoCards})

	created, err := f.ctrl.GenerateDeck(context.Background(), controller.GenerateInput{Topic: "Go", Count: 2})
	require.NoError(t, err)

	assert.Equal(t, "Go", created.Title)
	assert.Equal(t, "Generated from topic: Go", created.Description)
	require.Len(t, created.Cards, 2)
	for _, c := range created.Cards {
		assert.NotEmpty(t, c.ID)
		assert.False(t, c.Mastered)
	}

	st := f.ctrl.State()
	assert.Equal(t, domain.ViewEditDeck, st.View)
	assert.Equal(t, created.ID, st.ActiveDeckID)
	assert.False(t, st.Generating)
	assert.Equal(t, created.ID, f.ctrl.Dashboard().Decks[0].ID)
}

func TestController_GeneratePanicClearsFlag(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &completerStub{reply: twoCards, panics: 1})
	ctx := context.Background()

	assert.Panics(t, func() {
		_, _ = f.ctrl.GenerateDeck(ctx, controller.GenerateInput{Topic: "Go", Count: 2})
	})
	assert.False(t, f.ctrl.State().Generating)

	created, err := f.ctrl.GenerateDeck(ctx, controller.GenerateInput{Topic: "Go", Count: 2})
	require.NoError(t, err)
	assert.Len(t, created.Cards, 2)
}

func TestController_GenerateDeckNonArrayReply(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &completerStub{reply: `{"front":"Q","back":"A"}`})
	puts := f.blobs.Puts()

	_, err := f.ctrl.GenerateDeck(context.Background(), controller.GenerateInput{Topic: "Go", Count: 5})
	require.ErrorIs(t, err, domain.ErrGeneration)

	assert.Len(t, f.ctrl.Dashboard().Decks, 1)
	assert.Equal(t, puts, f.blobs.Puts())
	assert.Equal(t, domain.ViewCreateDeck, f.ctrl.State().View)
}

func TestController_GenerateWithoutProvider(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.ctrl.GenerateDeck(context.Background(), controller.GenerateInput{Topic: "Go", Count: 1})
	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestController_GenerateRejectsSecondRequest(t *testing.T) {
	t.Parallel()

	stub := &completerStub{reply: twoCards, started: make(chan struct{}, 1), gate: make(chan struct{})}
	f := newFixture(t, stub)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.GenerateDeck(context.Background(), controller.GenerateInput{Topic: "Go", Count: 2})
		done <- err
	}()
	<-stub.started

	assert.True(t, f.ctrl.State().Generating)
	_, err := f.ctrl.GenerateDeck(context.Background(), controller.GenerateInput{Topic: "Rust", Count: 2})
	require.ErrorIs(t, err, domain.ErrConflict)

	close(stub.gate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("generation did not finish")
	}
	assert.Len(t, f.ctrl.Dashboard().Decks, 2)
}

func TestController_GenerateDiscardedAfterNavigation(t *testing.T) {
	t.Parallel()

	stub := &completerStub{reply: twoCards, started: make(chan struct{}, 1), gate: make(chan struct{})}
	f := newFixture(t, stub)

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.GenerateDeck(context.Background(), controller.GenerateInput{Topic: "Go", Count: 2})
		done <- err
	}()
	<-stub.started

	f.ctrl.Exit()
	close(stub.gate)

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("generation did not finish")
	}
	require.ErrorIs(t, err, controller.ErrGenerationDiscarded)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	assert.Len(t, f.ctrl.Dashboard().Decks, 1, "discarded result must not create a deck")
	assert.Equal(t, domain.ViewDashboard, f.ctrl.State().View)
	assert.False(t, f.ctrl.State().Generating)
}
