package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/flashmind/internal/controller"
	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/editor"
)

type cardContentRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type createDeckRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ThemeColor  string               `json:"themeColor"`
	Icon        string               `json:"icon"`
	Cards       []cardContentRequest `json:"cards"`
}

type generateDeckRequest struct {
	Topic string `json:"topic"`
	Count *int   `json:"count"`
	Title string `json:"title"`
}

// View handles GET /api/view.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.State())
}

// Exit handles POST /api/exit.
func (h *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Exit())
}

// ListDecks handles GET /api/decks.
func (h *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Dashboard())
}

// CreateDeck handles POST /api/decks.
func (h *Handler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := editor.CreateDeckInput{
		Title:       req.Title,
		Description: req.Description,
		ThemeColor:  req.ThemeColor,
		Icon:        req.Icon,
	}
	for _, c := range req.Cards {
		in.Cards = append(in.Cards, domain.CardContent{Front: c.Front, Back: c.Back})
	}

	deck, err := h.ctrl.CreateDeck(r.Context(), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeckResponse(deck))
}

// GenerateDeck handles POST /api/decks/generate.
func (h *Handler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	var req generateDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	deck, err := h.ctrl.GenerateDeck(r.Context(), controller.GenerateInput{
		Topic: req.Topic,
		Count: count,
		Title: req.Title,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeckResponse(deck))
}

// DeleteDeck handles DELETE /api/decks/{id}?confirm=true.
func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	if err := h.ctrl.DeleteDeck(r.Context(), chi.URLParam(r, "id"), confirmed); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeckStats handles GET /api/decks/{id}/stats.
func (h *Handler) DeckStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.DeckStats(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckStatsResponse(s))
}

// GlobalStats handles GET /api/stats.
func (h *Handler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toGlobalStatsResponse(h.ctrl.GlobalStats()))
}
