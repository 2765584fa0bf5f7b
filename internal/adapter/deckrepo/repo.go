// Package deckrepo stores the deck list as a single JSON blob in a
// key-value slot. It is the persistence Source and Sink of the Deck Store.
package deckrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/flashmind/internal/domain"
)

// DefaultKey is the slot the deck list lives in.
const DefaultKey = "flashmind-decks"

// quarantineSuffix is appended to the key when unreadable data is set aside.
const quarantineSuffix = ".corrupt"

// BlobStore is a key-value slot store. Get returns domain.ErrNotFound for a
// key that was never written.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// copier is implemented by stores that can duplicate a key atomically.
type copier interface {
	Copy(ctx context.Context, src, dst string) error
}

// Repo reads and writes the deck list under one key.
type Repo struct {
	blobs BlobStore
	key   string
}

// New creates a Repo. An empty key selects DefaultKey.
func New(blobs BlobStore, key string) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{blobs: blobs, key: key}
}

// Key returns the slot key.
func (r *Repo) Key() string { return r.key }

// Fetch loads and decodes the deck list.
func (r *Repo) Fetch(ctx context.Context) ([]domain.Deck, error) {
	data, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("decks %q: %w", r.key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read decks %q: %w", r.key, err)
	}

	decks, err := Decode(data)
	if err != nil {
		return nil, &domain.CorruptionError{Key: r.key, Err: err}
	}
	return decks, nil
}

// Persist encodes and writes the full deck list, overwriting the slot.
func (r *Repo) Persist(ctx context.Context, decks []domain.Deck) error {
	data, err := Encode(decks)
	if err != nil {
		return err
	}
	if err := r.blobs.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("write decks %q: %w", r.key, err)
	}
	return nil
}

// Quarantine copies the current raw slot content to "<key>.corrupt" so it
// survives being overwritten by recovery.
func (r *Repo) Quarantine(ctx context.Context) error {
	dst := r.key + quarantineSuffix

	if c, ok := r.blobs.(copier); ok {
		err := c.Copy(ctx, r.key, dst)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("write quarantine %q: %w", dst, err)
		}
		return nil
	}

	data, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read decks %q: %w", r.key, err)
	}
	if err := r.blobs.Put(ctx, dst, data); err != nil {
		return fmt.Errorf("write quarantine %q: %w", dst, err)
	}
	return nil
}
