package deck_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashmind/internal/adapter/blob/memory"
	"github.com/heartmarshall/flashmind/internal/adapter/deckrepo"
	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/deck"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*deck.Store, *memory.Store, *deckrepo.Repo) {
	t.Helper()
	blobs := memory.New()
	repo := deckrepo.New(blobs, "")
	s := deck.NewStore(slog.Default(), repo, repo, deck.WithClock(func() time.Time { return fixedNow }))
	return s, blobs, repo
}

func testDeck(id string, cards ...domain.Flashcard) domain.Deck {
	if len(cards) == 0 {
		cards = []domain.Flashcard{{ID: id + "-card", Front: "Q", Back: "A"}}
	}
	return domain.Deck{
		ID:        id,
		Title:     "Deck " + id,
		Cards:     cards,
		CreatedAt: fixedNow,
	}
}

// persisted decodes what the sink actually wrote.
func persisted(t *testing.T, repo *deckrepo.Repo) []domain.Deck {
	t.Helper()
	decks, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	return decks
}

func TestStore_Load_EmptySlotSeedsDefault(t *testing.T) {
	t.Parallel()

	s, _, repo := newStore(t)

	decks, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, deck.DefaultDecks(fixedNow), decks)
	require.Len(t, decks, 1)
	require.Len(t, decks[0].Cards, 2)
	assert.Equal(t, "1a", decks[0].Cards[0].ID)
	assert.Equal(t, "1b", decks[0].Cards[1].ID)
	assert.Empty(t, s.Warning())

	// Seed is persisted so the blob reflects the in-memory list.
	assert.Equal(t, decks, persisted(t, repo))
}

func TestStore_Load_ExistingData(t *testing.T) {
	t.Parallel()

	s, _, repo := newStore(t)
	want := []domain.Deck{testDeck("a", domain.Flashcard{ID: "c", Front: "Q", Back: "A"})}
	require.NoError(t, repo.Persist(context.Background(), want))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_Load_CorruptRecoversAndQuarantines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, blobs, _ := newStore(t)
	require.NoError(t, blobs.Put(ctx, deckrepo.DefaultKey, []byte(`{"not":"an array"}`)))

	decks, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, deck.DefaultDecks(fixedNow), decks)
	assert.NotEmpty(t, s.Warning())

	backup, err := blobs.Get(ctx, deckrepo.DefaultKey+".corrupt")
	require.NoError(t, err)
	assert.Equal(t, `{"not":"an array"}`, string(backup))
}

type brokenSource struct{ err error }

func (b brokenSource) Fetch(context.Context) ([]domain.Deck, error) { return nil, b.err }

func TestStore_Load_IOErrorIsReturned(t *testing.T) {
	t.Parallel()

	ioErr := errors.New("connection refused")
	repo := deckrepo.New(memory.New(), "")
	s := deck.NewStore(slog.Default(), brokenSource{err: ioErr}, repo)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ioErr)

	// Nothing was seeded over the unreachable data.
	_, fetchErr := repo.Fetch(context.Background())
	assert.ErrorIs(t, fetchErr, domain.ErrNotFound)
}

func TestStore_SaveAllThenLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, repo := newStore(t)
	decks := []domain.Deck{
		testDeck("x", domain.Flashcard{ID: "x1", Front: "1", Back: "one", Mastered: true}, domain.Flashcard{ID: "x2", Front: "2", Back: "two"}),
		testDeck("y", domain.Flashcard{ID: "y1", Front: "a", Back: "b"}),
	}

	require.NoError(t, s.SaveAll(ctx, decks))

	reloaded := deck.NewStore(slog.Default(), repo, repo)
	got, err := reloaded.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, decks, got)
}

func TestStore_Create_Prepends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, repo := newStore(t)
	_, err := s.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, testDeck("new", domain.Flashcard{ID: "n1", Front: "Q", Back: "A"})))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "1", list[1].ID)
	assert.Equal(t, list, persisted(t, repo))
}

func TestStore_Create_DuplicateID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, _ := newStore(t)
	_, err := s.Load(ctx)
	require.NoError(t, err)

	err = s.Create(ctx, testDeck("1"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, s.List(), 1)
}

func TestStore_Update_ReplacesMatchingDeck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, repo := newStore(t)
	_, err := s.Load(ctx)
	require.NoError(t, err)

	d, err := s.Get("1")
	require.NoError(t, err)
	d.Title = "JS"
	d.Cards[0].Mastered = true

	require.NoError(t, s.Update(ctx, d))

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "JS", got.Title)
	assert.True(t, got.Cards[0].Mastered)
	assert.Equal(t, s.List(), persisted(t, repo))
}

func TestStore_Update_UnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, blobs, _ := newStore(t)
	_, err := s.Load(ctx)
	require.NoError(t, err)
	before := s.List()
	puts := blobs.Puts()

	require.NoError(t, s.Update(ctx, testDeck("ghost")))

	assert.Equal(t, before, s.List())
	assert.Equal(t, puts, blobs.Puts(), "no-op update must not write")
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, repo := newStore(t)
	_, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, testDeck("b")))

	require.NoError(t, s.Delete(ctx, "1"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, list, persisted(t, repo))

	require.NoError(t, s.Delete(ctx, "missing"))
	assert.Len(t, s.List(), 1)
}

func TestStore_Get_NotFound(t *testing.T) {
	t.Parallel()

	s, _, _ := newStore(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, _ := newStore(t)
	_, err := s.Load(ctx)
	require.NoError(t, err)

	list := s.List()
	list[0].Cards[0].Front = "tampered"
	got, err := s.Get("1")
	require.NoError(t, err)
	got.Cards[1].Mastered = true

	fresh, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "What is a closure?", fresh.Cards[0].Front)
	assert.False(t, fresh.Cards[1].Mastered)
}

type failingSink struct{ err error }

func (f failingSink) Persist(context.Context, []domain.Deck) error { return f.err }

func TestStore_SinkFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := deckrepo.New(memory.New(), "")
	require.NoError(t, repo.Persist(ctx, []domain.Deck{testDeck("a")}))

	sinkErr := errors.New("quota exceeded")
	s := deck.NewStore(slog.Default(), repo, failingSink{err: sinkErr})
	_, err := s.Load(ctx)
	require.NoError(t, err)

	err = s.Create(ctx, testDeck("b"))
	assert.ErrorIs(t, err, sinkErr)
	err = s.Delete(ctx, "a")
	assert.ErrorIs(t, err, sinkErr)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}
