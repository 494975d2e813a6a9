package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ZaidAr98/PropTrack/internal/app"
	"github.com/ZaidAr98/PropTrack/internal/domain"
)

type scheduleViewingRequest struct {
	PropertyID string `json:"propertyId"`
	ClientID   string `json:"clientId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Notes      string `json:"notes"`
}

type viewingNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handlers) scheduleViewing(w http.ResponseWriter, r *http.Request) {
	var req scheduleViewingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.Viewings.Schedule(r.Context(), app.ScheduleViewingInput{
		PropertyID: req.PropertyID,
		ClientID:   req.ClientID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Viewing scheduled successfully",
		"viewing": view,
	})
}

func (h *Handlers) listViewings(w http.ResponseWriter, r *http.Request) {
	views, err := h.Viewings.List(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if views == nil {
		views = []domain.ViewingView{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Viewings retrieved successfully",
		"viewings": views,
	})
}

func (h *Handlers) completeViewing(w http.ResponseWriter, r *http.Request) {
	h.transitionViewing(w, r, "Viewing marked as completed successfully", h.Viewings.Complete)
}

func (h *Handlers) cancelViewing(w http.ResponseWriter, r *http.Request) {
	h.transitionViewing(w, r, "Viewing cancelled successfully", h.Viewings.Cancel)
}

func (h *Handlers) noShowViewing(w http.ResponseWriter, r *http.Request) {
	h.transitionViewing(w, r, "Viewing marked as no-show successfully", h.Viewings.MarkNoShow)
}

func (h *Handlers) transitionViewing(
	w http.ResponseWriter,
	r *http.Request,
	successMsg string,
	op func(ctx context.Context, id, notes string) (domain.ViewingView, error),
) {
	var req viewingNotesRequest
	// notes body is optional on transitions
	_ = json.NewDecoder(r.Body).Decode(&req)

	view, err := op(r.Context(), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": successMsg,
		"viewing": view,
	})
}

func (h *Handlers) viewingNotes(w http.ResponseWriter, r *http.Request) {
	var req viewingNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.Viewings.AddNotes(r.Context(), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Viewing notes updated successfully",
		"viewing": view,
	})
}
