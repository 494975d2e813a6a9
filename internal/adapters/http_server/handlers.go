package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ZaidAr98/PropTrack/internal/app"
)

type Handlers struct {
	Properties *app.PropertyService
	Viewings   *app.ViewingService
	Inquiries  *app.InquiryService
	Clients    *app.ClientService
	Limiter    *LimiterStore
	Dev        bool
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// public
	s.mux.Get("/api/properties", h.listProperties)
	s.mux.Get("/api/properties/search", h.searchProperties)
	s.mux.Get("/api/properties/{id}", h.getProperty)
	if h.Limiter != nil {
		s.mux.With(RateLimit(h.Limiter)).Post("/api/inquiries", h.submitInquiry)
	} else {
		s.mux.Post("/api/inquiries", h.submitInquiry)
	}

	// admin
	s.mux.Route("/api/admin", func(r chi.Router) {
		r.Post("/properties", h.addProperty)
		r.Put("/properties/{id}", h.editProperty)
		r.Put("/properties/{id}/archive", h.archiveProperty)
		r.Delete("/properties/{id}", h.deleteProperty)

		r.Post("/viewings", h.scheduleViewing)
		r.Get("/viewings", h.listViewings)
		r.Put("/viewings/{id}/complete", h.completeViewing)
		r.Put("/viewings/{id}/cancel", h.cancelViewing)
		r.Put("/viewings/{id}/no-show", h.noShowViewing)
		r.Put("/viewings/{id}/notes", h.viewingNotes)

		r.Get("/inquiries", h.listInquiries)
		r.Delete("/inquiries/{id}", h.deleteInquiry)

		r.Get("/clients", h.listClients)
		r.Get("/clients/stats", h.clientStats)
		r.Get("/clients/{id}", h.getClient)
		r.Delete("/clients/{id}", h.deleteClient)
	})
}
