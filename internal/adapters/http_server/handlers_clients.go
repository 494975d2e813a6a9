package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

func (h *Handlers) listClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := parsePage(q, 12)
	search := strings.TrimSpace(q.Get("search"))

	items, pagination, err := h.Clients.List(r.Context(), search, pg)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if items == nil {
		items = []domain.Client{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clients":    items,
		"pagination": pagination,
	})
}

func (h *Handlers) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client": c})
}

func (h *Handlers) deleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}

func (h *Handlers) clientStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Clients.Stats(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
