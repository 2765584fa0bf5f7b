package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/flashmind/internal/domain"
	"github.com/heartmarshall/flashmind/internal/service/study"
)

type navigateRequest struct {
	Direction domain.Direction `json:"direction"`
}

type gradeRequest struct {
	Known *bool `json:"known"`
}

// StartStudy handles POST /api/decks/{id}/study.
func (h *Handler) StartStudy(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r)(h.ctrl.StartStudy(r.Context(), chi.URLParam(r, "id")))
}

// Session handles GET /api/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r)(h.ctrl.Session())
}

// Flip handles POST /api/session/flip.
func (h *Handler) Flip(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r)(h.ctrl.Flip())
}

// Navigate handles POST /api/session/navigate.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeSnapshot(w, r)(h.ctrl.Navigate(req.Direction))
}

// Grade handles POST /api/session/grade.
func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Known == nil {
		h.handleError(w, r, domain.NewValidationError("known", "required"))
		return
	}
	h.writeSnapshot(w, r)(h.ctrl.Grade(r.Context(), *req.Known))
}

// Restart handles POST /api/session/restart.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r)(h.ctrl.Restart())
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request) func(study.Snapshot, error) {
	return func(s study.Snapshot, err error) {
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}
