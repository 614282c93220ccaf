package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

type createCampaignRequest struct {
	CampaignID string          `json:"campaign_id"`
	BrandID    string          `json:"brand_id"`
	Category   string          `json:"category"`
	Schedule   domain.Schedule `json:"schedule"`
	BasePay    uint64          `json:"base_pay"`
	Budget     uint64          `json:"total_budget"`
	Rates      domain.CPMRates `json:"cpm_rates"`
	MaxWinners int             `json:"max_winners"`
}

// handleCreateCampaign funds and activates a campaign for the calling
// brand owner.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), port.CreateCampaignInput{
		Caller:     caller(r),
		CampaignID: req.CampaignID,
		BrandID:    req.BrandID,
		Category:   req.Category,
		Schedule:   req.Schedule,
		BasePay:    domain.Amount(req.BasePay),
		Budget:     domain.Amount(req.Budget),
		Rates:      req.Rates,
		MaxWinners: req.MaxWinners,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignView(c))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignView(c))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.UpdateCampaignStatus(r.Context(), port.UpdateStatusInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		Status:     domain.CampaignStatus(req.Status),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignView(c))
}

type selectWinnersRequest struct {
	Winners []string `json:"winners"`
}

func (h *Handler) handleSelectWinners(w http.ResponseWriter, r *http.Request) {
	var req selectWinnersRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.SelectWinners(r.Context(), port.SelectWinnersInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		Winners:    req.Winners,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignView(c))
}

func (h *Handler) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.svc.ListReceipts(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]receiptView, 0, len(receipts))
	for i := range receipts {
		out = append(out, toReceiptView(&receipts[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}
