package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"collabpay/internal/core/port"
)

// Handler is the inbound HTTP adapter: a thin layer translating requests
// into engine operations. The caller's address comes from the
// X-Caller-Address header; authenticating that address is the job of
// whatever gateway sits in front of this service.
type Handler struct {
	svc    port.EscrowEngine
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.EscrowEngine, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Post("/", h.handleCreateCampaign)
		r.Route("/{campaignID}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Patch("/status", h.handleUpdateStatus)
			r.Post("/winners", h.handleSelectWinners)
			r.Get("/receipts", h.handleListReceipts)
			r.Post("/applications", h.handleApply)
			r.Get("/applications", h.handleListApplications)
			r.Route("/content", func(r chi.Router) {
				r.Post("/", h.handleSubmitContent)
				r.Get("/", h.handleListContent)
				r.Post("/{contentID}/review", h.handleReviewContent)
				r.Post("/{contentID}/publish", h.handlePublishContent)
				r.Put("/{contentID}/engagement", h.handleUpdateEngagement)
				r.Post("/{contentID}/bonus", h.handlePayBonus)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func caller(r *http.Request) string {
	return r.Header.Get("X-Caller-Address")
}
