package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type updateDraftRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type editCardRequest struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// EditDeck handles POST /api/decks/{id}/edit.
func (h *Handler) EditDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.ctrl.EditDeck(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(deck))
}

// Draft handles GET /api/draft.
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	deck, err := h.ctrl.Draft()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(deck))
}

// UpdateDraft handles PATCH /api/draft.
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req updateDraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := h.ctrl.UpdateDraft(req.Title, req.Description)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(deck))
}

// AddDraftCard handles POST /api/draft/cards.
func (h *Handler) AddDraftCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.ctrl.AddDraftCard()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCardResponse(card))
}

// EditDraftCard handles PATCH /api/draft/cards/{cardID}.
func (h *Handler) EditDraftCard(w http.ResponseWriter, r *http.Request) {
	var req editCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deck, err := h.ctrl.EditDraftCard(chi.URLParam(r, "cardID"), req.Front, req.Back)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(deck))
}

// RemoveDraftCard handles DELETE /api/draft/cards/{cardID}.
func (h *Handler) RemoveDraftCard(w http.ResponseWriter, r *http.Request) {
	deck, err := h.ctrl.RemoveDraftCard(chi.URLParam(r, "cardID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(deck))
}

// SaveDraft handles POST /api/draft/save.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	deck, err := h.ctrl.SaveDraft(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeckResponse(deck))
}

// CancelDraft handles POST /api/draft/cancel.
func (h *Handler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.CancelDraft())
}
