package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ZaidAr98/PropTrack/internal/app"
	"github.com/ZaidAr98/PropTrack/internal/domain"
)

type submitInquiryRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PropertyID string `json:"propertyId"`
	Message    string `json:"message"`
}

func (h *Handlers) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var req submitInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.Inquiries.Submit(r.Context(), app.SubmitInquiryInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PropertyID: req.PropertyID,
		Message:    req.Message,
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Inquiry submitted successfully",
		"inquiry": view,
	})
}

func (h *Handlers) listInquiries(w http.ResponseWriter, r *http.Request) {
	pg := parsePage(r.URL.Query(), 10)
	items, pagination, err := h.Inquiries.List(r.Context(), pg)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	if items == nil {
		items = []domain.InquiryView{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"inquiries":  items,
		"pagination": pagination,
	})
}

func (h *Handlers) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.Inquiries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Inquiry deleted successfully"})
}
