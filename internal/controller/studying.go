package controller

import (
	"context"

	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/study"
)

var errNoSession = domain.NewValidationError("view", "no study session is running")

// StartStudy begins a fresh pass over the deck.
func (c *Controller) StartStudy(ctx context.Context, id string) (study.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.study.Start(ctx, id)
	if err != nil {
		return study.Snapshot{}, c.notFoundLocked(err)
	}
	c.navigate(domain.ViewStudySession, id)
	c.session = session
	return session.Snapshot(), nil
}

// Session returns the running study session.
func (c *Controller) Session() (study.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return study.Snapshot{}, errNoSession
	}
	return c.session.Snapshot(), nil
}

// Flip turns the current card over.
func (c *Controller) Flip() (study.Snapshot, error) {
	return c.withSession(func(s *study.Session) error { return s.Flip() })
}

// Navigate moves to the previous or next card without grading.
func (c *Controller) Navigate(dir domain.Direction) (study.Snapshot, error) {
	return c.withSession(func(s *study.Session) error { return s.Navigate(dir) })
}

// Grade records the current card as known or not.
func (c *Controller) Grade(ctx context.Context, known bool) (study.Snapshot, error) {
	return c.withSession(func(s *study.Session) error {
		return c.notFoundLocked(s.Grade(ctx, known))
	})
}

// Restart begins a new pass over the same deck.
func (c *Controller) Restart() (study.Snapshot, error) {
	return c.withSession(func(s *study.Session) error {
		s.Restart()
		return nil
	})
}

func (c *Controller) withSession(fn func(*study.Session) error) (study.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return study.Snapshot{}, errNoSession
	}
	s := c.session
	if err := fn(s); err != nil {
		return study.Snapshot{}, err
	}
	return s.Snapshot(), nil
}
