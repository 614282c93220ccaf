package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"collabpay/internal/core/port"
)

type applyRequest struct {
	CreatorID   string `json:"creator_id"`
	ContentPlan string `json:"content_plan"`
	Timestamp   int64  `json:"timestamp"`
}

// handleApply files a creator application inside the campaign's
// application window.
func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	app, err := h.svc.Apply(r.Context(), port.ApplyInput{
		Caller:      caller(r),
		CampaignID:  chi.URLParam(r, "campaignID"),
		CreatorID:   req.CreatorID,
		ContentPlan: req.ContentPlan,
		Timestamp:   req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toApplicationView(app))
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplications(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]applicationView, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationView(&apps[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}
