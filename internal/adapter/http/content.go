package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"collabpay/internal/core/domain"
	"collabpay/internal/core/port"
)

type submitContentRequest struct {
	ContentID string `json:"content_id"`
	CreatorID string `json:"creator_id"`
	Link      string `json:"link"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleSubmitContent(w http.ResponseWriter, r *http.Request) {
	var req submitContentRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	ct, err := h.svc.SubmitContent(r.Context(), port.SubmitContentInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		ContentID:  req.ContentID,
		CreatorID:  req.CreatorID,
		Link:       req.Link,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toContentView(ct))
}

func (h *Handler) handleListContent(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListContent(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]contentView, 0, len(list))
	for i := range list {
		out = append(out, toContentView(&list[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

type reviewContentRequest struct {
	Approve   bool   `json:"approve"`
	Notes     string `json:"notes"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleReviewContent(w http.ResponseWriter, r *http.Request) {
	var req reviewContentRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	ct, err := h.svc.ReviewContent(r.Context(), port.ReviewContentInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		ContentID:  chi.URLParam(r, "contentID"),
		Approve:    req.Approve,
		Notes:      req.Notes,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toContentView(ct))
}

type publishContentRequest struct {
	Timestamp int64 `json:"timestamp"`
}

type publishContentResponse struct {
	Content contentView `json:"content"`
	Receipt receiptView `json:"receipt"`
}

// handlePublishContent publishes accepted content; the base payment
// receipt minted in the same transaction is returned alongside.
func (h *Handler) handlePublishContent(w http.ResponseWriter, r *http.Request) {
	var req publishContentRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.PublishContent(r.Context(), port.PublishContentInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		ContentID:  chi.URLParam(r, "contentID"),
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, publishContentResponse{
		Content: toContentView(res.Content),
		Receipt: toReceiptView(res.Receipt),
	})
}

type updateEngagementRequest struct {
	Engagement domain.Engagement `json:"engagement"`
	Timestamp  int64             `json:"timestamp"`
}

func (h *Handler) handleUpdateEngagement(w http.ResponseWriter, r *http.Request) {
	var req updateEngagementRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	ct, err := h.svc.UpdateEngagement(r.Context(), port.UpdateEngagementInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		ContentID:  chi.URLParam(r, "contentID"),
		Engagement: req.Engagement,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toContentView(ct))
}

type payBonusRequest struct {
	Timestamp int64 `json:"timestamp"`
}

// handlePayBonus pays the engagement bonus for one published piece of
// content. A computed bonus of zero returns 204 No Content: nothing was
// debited and no receipt exists.
func (h *Handler) handlePayBonus(w http.ResponseWriter, r *http.Request) {
	var req payBonusRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	receipt, err := h.svc.PayBonus(r.Context(), port.PayBonusInput{
		Caller:     caller(r),
		CampaignID: chi.URLParam(r, "campaignID"),
		ContentID:  chi.URLParam(r, "contentID"),
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if receipt == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, toReceiptView(receipt))
}
