package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/flashmind/internal/adapter/deckrepo"
	"github.com/heartmarshall/flashmind/internal/config"
	"github.com/heartmarshall/flashmind/internal/controller"
	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/deck"
	"github.com/heartmarshall/flashmind/internal/service/editor"
	"github.com/heartmarshall/flashmind/internal/service/generate"
	"github.com/heartmarshall/flashmind/internal/service/study"
	"github.com/heartmarshall/flashmind/internal/transport/middleware"
	"github.com/heartmarshall/flashmind/internal/transport/rest"
)

// Run loads configuration, opens storage, restores the deck list and serves
// the HTTP API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("generation", generationLabel(cfg.Generation)),
	)

	blobs, closeStorage, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	store, err := LoadDecks(ctx, blobs, cfg.Storage.Key, logger)
	if err != nil {
		return err
	}

	completer, err := NewCompleter(cfg.Generation, logger)
	if err != nil {
		return err
	}

	ctrl := newController(logger, store, completer, cfg.Generation.MaxCards)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterConfig{
		API:                 rest.NewHandler(ctrl, generate.DefaultCount, logger),
		Health:              rest.NewHealthHandler(blobs, cfg.Storage.Driver, Version),
		Logger:              logger,
		CORS:                cfg.CORS,
		Limiter:             limiter,
		GenerationPerMinute: cfg.Generation.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// LoadDecks restores the deck list from blobs. A corrupt list is moved aside
// and replaced by the seed deck; the store then carries a warning.
func LoadDecks(ctx context.Context, blobs BlobStore, key string, logger *slog.Logger) (*deck.Store, error) {
	repo := deckrepo.New(blobs, key)
	store := deck.NewStore(logger, repo, repo)

	if _, err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("storage key %q: %w", repo.Key(), err)
	}
	return store, nil
}

func newController(logger *slog.Logger, store *deck.Store, completer generate.Completer, maxCards int) *controller.Controller {
	ed := editor.NewService(logger, store)
	st := study.NewService(logger, store, celebrationLogger(logger))

	if completer == nil {
		return controller.New(logger, store, ed, st, nil)
	}
	return controller.New(logger, store, ed, st, generate.NewService(logger, completer, maxCards))
}

func celebrationLogger(logger *slog.Logger) study.Celebrator {
	return study.CelebratorFunc(func(ctx context.Context, deckID string, s domain.SessionSummary) {
		logger.InfoContext(ctx, "study session celebrated",
			slog.String("deck_id", deckID),
			slog.Int("correct", s.CorrectCount),
			slog.Int("total", s.Total),
		)
	})
}

func generationLabel(cfg config.GenerationConfig) string {
	if !cfg.Enabled() {
		return "disabled"
	}
	return cfg.Provider
}
