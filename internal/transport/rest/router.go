package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/flashmind/internal/config"
	"github.com/heartmarshall/flashmind/internal/transport/middleware"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	API                 *Handler
	Health              *HealthHandler
	Logger              *slog.Logger
	CORS                config.CORSConfig
	Limiter             *middleware.RateLimiter
	GenerationPerMinute int
}

// NewRouter builds the HTTP handler tree. Probes sit outside the CORS and
// request logging chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))

	r.Get("/live", cfg.Health.Live)
	r.Get("/ready", cfg.Health.Ready)
	r.Get("/health", cfg.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Chain(
			middleware.RequestID(),
			middleware.Logger(cfg.Logger),
			middleware.CORS(cfg.CORS),
		))

		h := cfg.API
		r.Get("/view", h.View)
		r.Post("/exit", h.Exit)
		r.Get("/stats", h.GlobalStats)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", h.ListDecks)
			r.Post("/", h.CreateDeck)
			if cfg.Limiter != nil {
				r.With(cfg.Limiter.Limit(cfg.GenerationPerMinute)).Post("/generate", h.GenerateDeck)
			} else {
				r.Post("/generate", h.GenerateDeck)
			}

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", h.DeleteDeck)
				r.Get("/stats", h.DeckStats)
				r.Post("/edit", h.EditDeck)
				r.Post("/study", h.StartStudy)
			})
		})

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", h.Draft)
			r.Patch("/", h.UpdateDraft)
			r.Post("/cards", h.AddDraftCard)
			r.Patch("/cards/{cardID}", h.EditDraftCard)
			r.Delete("/cards/{cardID}", h.RemoveDraftCard)
			r.Post("/save", h.SaveDraft)
			r.Post("/cancel", h.CancelDraft)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Session)
			r.Post("/flip", h.Flip)
			r.Post("/navigate", h.Navigate)
			r.Post("/grade", h.Grade)
			r.Post("/restart", h.Restart)
		})
	})

	return r
}
