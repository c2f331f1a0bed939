package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/middleware"
)

// CreateCampaign creates a draft campaign.
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	var req CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid request body")
		return
	}
	if req.TemplateID <= 0 {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "template_id is required")
		return
	}

	campaign, err := h.service.Campaign.CreateCampaign(tenantID, req.Name, req.TemplateID)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, campaign)
}

// GetCampaign returns one campaign with its counters.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	campaignID, ok := urlParamID(r, "campaignID")
	if !ok {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid campaign id")
		return
	}

	campaign, err := h.service.Campaign.GetCampaign(tenantID, campaignID)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, campaign)
}

// ListCampaigns returns the tenant's campaigns, newest first.
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	page, limit := parsePagination(r)

	campaigns, total, err := h.service.Campaign.ListCampaigns(tenantID, page, limit)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, CampaignListResponse{
		Campaigns: campaigns,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// BuildSnapshot freezes the campaign's recipient list.
func (h *Handler) BuildSnapshot(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	campaignID, ok := urlParamID(r, "campaignID")
	if !ok {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid campaign id")
		return
	}

	count, err := h.service.Campaign.BuildSnapshot(tenantID, campaignID)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, SnapshotResponse{
		CampaignID:     campaignID,
		RecipientCount: count,
	})
}

// ConfirmCampaign moves a draft campaign to confirmed.
func (h *Handler) ConfirmCampaign(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	campaignID, ok := urlParamID(r, "campaignID")
	if !ok {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid campaign id")
		return
	}

	if err := h.service.Campaign.Confirm(tenantID, campaignID); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	campaign, err := h.service.Campaign.GetCampaign(tenantID, campaignID)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, campaign)
}

// ScheduleCampaign sets a future send time.
func (h *Handler) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	campaignID, ok := urlParamID(r, "campaignID")
	if !ok {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid campaign id")
		return
	}

	var req ScheduleCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ScheduledFor.IsZero() {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "scheduled_for is required (RFC 3339)")
		return
	}

	if err := h.service.Campaign.Schedule(tenantID, campaignID, req.ScheduledFor); err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	campaign, err := h.service.Campaign.GetCampaign(tenantID, campaignID)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, campaign)
}

// SendCampaign runs a dispatch synchronously and returns this run's counts.
func (h *Handler) SendCampaign(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	campaignID, ok := urlParamID(r, "campaignID")
	if !ok {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid campaign id")
		return
	}

	result, err := h.service.Dispatcher.Dispatch(r.Context(), tenantID, campaignID)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	h.logger.Info("Manual dispatch finished",
		zap.Int64("tenantID", tenantID),
		zap.Int64("campaignID", campaignID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))

	render.JSON(w, r, DispatchResponse{
		CampaignID: campaignID,
		Sent:       result.Sent,
		Failed:     result.Failed,
	})
}

// ListRecipients returns the campaign's frozen recipient rows.
func (h *Handler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	campaignID, ok := urlParamID(r, "campaignID")
	if !ok {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid campaign id")
		return
	}

	page, limit := parsePagination(r)

	recipients, total, err := h.service.Campaign.ListRecipients(tenantID, campaignID, page, limit)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, RecipientListResponse{
		Recipients: recipients,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}
