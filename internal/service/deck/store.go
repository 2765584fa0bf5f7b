// Package deck implements the Deck Store: the authoritative in-memory deck
// list, persisted wholesale through a Sink after every mutation.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// Source provides the persisted deck list at startup.
// It returns domain.ErrNotFound when nothing was persisted yet and an error
// matching domain.ErrStorageCorrupt when the persisted data is unreadable.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Deck, error)
}

// Sink receives the full deck list after every successful mutation.
type Sink interface {
	Persist(ctx context.Context, decks []domain.Deck) error
}

// quarantiner is implemented by sources that can set unreadable data aside
// before it is overwritten.
type quarantiner interface {
	Quarantine(ctx context.Context) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for seeded decks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the canonical deck list. Every read returns a deep copy and
// every mutation is committed to the Sink before it becomes visible.
type Store struct {
	mu      sync.RWMutex
	decks   []domain.Deck
	warning string

	source Source
	sink   Sink
	now    func() time.Time
	log    *slog.Logger
}

// NewStore creates an empty Store. Call Load before serving requests.
func NewStore(log *slog.Logger, source Source, sink Sink, opts ...Option) *Store {
	s := &Store{
		source: source,
		sink:   sink,
		now:    time.Now,
		log:    log.With("service", "deck_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted deck list. An empty slot or unreadable data falls
// back to the seeded default deck, which is then persisted. Unreadable data is
// quarantined first when the source supports it, and Warning reports the
// recovery. I/O failures of the source are returned as errors: seeding over
// an unreachable store would destroy data.
func (s *Store) Load(ctx context.Context) ([]domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	decks, err := s.source.Fetch(ctx)
	switch {
	case err == nil:
		s.decks = decks
		s.warning = ""
		s.log.InfoContext(ctx, "decks loaded", slog.Int("count", len(decks)))
		return domain.CloneDecks(s.decks), nil

	case errors.Is(err, domain.ErrNotFound):
		s.log.InfoContext(ctx, "no persisted decks, seeding default")
		s.warning = ""

	case errors.Is(err, domain.ErrStorageCorrupt):
		s.log.WarnContext(ctx, "persisted decks unreadable, recovering with default deck",
			slog.String("error", err.Error()),
		)
		s.warning = "Saved decks could not be read and were replaced with the default deck."
		if q, ok := s.source.(quarantiner); ok {
			if qErr := q.Quarantine(ctx); qErr != nil {
				return nil, fmt.Errorf("load decks: quarantine: %w", qErr)
			}
			s.warning += " The unreadable data was kept in a backup slot."
		}

	default:
		return nil, fmt.Errorf("load decks: %w", err)
	}

	seed := DefaultDecks(s.now())
	if err := s.sink.Persist(ctx, domain.CloneDecks(seed)); err != nil {
		return nil, fmt.Errorf("load decks: persist seed: %w", err)
	}
	s.decks = seed

	return domain.CloneDecks(s.decks), nil
}

// Warning returns a user-facing notice when the last Load had to recover from
// unreadable data, or an empty string.
func (s *Store) Warning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warning
}

// List returns a deep copy of all decks in display order.
func (s *Store) List() []domain.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneDecks(s.decks)
}

// Get returns a deep copy of the deck with the given id.
func (s *Store) Get(id string) (domain.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.decks[i].Clone(), nil
	}
	return domain.Deck{}, fmt.Errorf("deck %s: %w", id, domain.ErrNotFound)
}

// SaveAll replaces the whole deck list.
func (s *Store) SaveAll(ctx context.Context, decks []domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "save all", domain.CloneDecks(decks))
}

// Create prepends a new deck. A deck whose id already exists is rejected.
func (s *Store) Create(ctx context.Context, deck domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(deck.ID) >= 0 {
		return fmt.Errorf("create deck %s: %w", deck.ID, domain.ErrConflict)
	}

	next := make([]domain.Deck, 0, len(s.decks)+1)
	next = append(next, deck.Clone())
	next = append(next, domain.CloneDecks(s.decks)...)

	if err := s.commit(ctx, "create deck", next); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "deck created",
		slog.String("deck_id", deck.ID),
		slog.Int("cards", len(deck.Cards)),
	)
	return nil
}

// Update replaces the deck with the matching id. An unknown id is a no-op.
func (s *Store) Update(ctx context.Context, deck domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(deck.ID)
	if i < 0 {
		s.log.DebugContext(ctx, "update of unknown deck ignored", slog.String("deck_id", deck.ID))
		return nil
	}

	next := domain.CloneDecks(s.decks)
	next[i] = deck.Clone()

	return s.commit(ctx, "update deck", next)
}

// Delete removes the deck with the matching id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := make([]domain.Deck, 0, len(s.decks)-1)
	next = append(next, domain.CloneDecks(s.decks[:i])...)
	next = append(next, domain.CloneDecks(s.decks[i+1:])...)

	if err := s.commit(ctx, "delete deck", next); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "deck deleted", slog.String("deck_id", id))
	return nil
}

// commit persists next and swaps it in. On failure the in-memory list is
// left untouched so it keeps matching the persisted blob. Caller holds mu.
func (s *Store) commit(ctx context.Context, op string, next []domain.Deck) error {
	if err := s.sink.Persist(ctx, domain.CloneDecks(next)); err != nil {
		return fmt.Errorf("%s: persist: %w", op, err)
	}
	s.decks = next
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, d := range s.decks {
		if d.ID == id {
			return i
		}
	}
	return -1
}
