package handler

import (
	"time"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/service"
)

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Pagination describes the window of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type CreateContactRequest struct {
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	CustomFields models.CustomFields `json:"custom_fields,omitempty"`
	IsOptedOut   bool                `json:"is_opted_out,omitempty"`
}

type ContactListResponse struct {
	Contacts   []*models.Contact `json:"contacts"`
	Pagination Pagination        `json:"pagination"`
}

type CreateTemplateRequest struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type TemplateListResponse struct {
	Templates  []*models.Template `json:"templates"`
	Pagination Pagination         `json:"pagination"`
}

type CreateCampaignRequest struct {
	Name       string `json:"name"`
	TemplateID int64  `json:"template_id"`
}

type CampaignListResponse struct {
	Campaigns  []*models.Campaign `json:"campaigns"`
	Pagination Pagination         `json:"pagination"`
}

type SnapshotResponse struct {
	CampaignID     int64 `json:"campaign_id"`
	RecipientCount int   `json:"recipient_count"`
}

type ScheduleCampaignRequest struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

type RecipientListResponse struct {
	Recipients []*models.CampaignRecipient `json:"recipients"`
	Pagination Pagination                  `json:"pagination"`
}

// DispatchResponse reports the outcome of a completed send run.
type DispatchResponse struct {
	CampaignID int64 `json:"campaign_id"`
	Sent       int   `json:"sent"`
	Failed     int   `json:"failed"`
}

type MessageLogListResponse struct {
	Messages   []*models.MessageLogEntry `json:"messages"`
	Pagination Pagination                `json:"pagination"`
}

type SchedulerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status               service.OverallStatus   `json:"status"`
	SchedulerStatus      service.SchedulerStatus `json:"scheduler_status,omitempty"`
	DatabaseStatus       service.ComponentStatus `json:"database_status,omitempty"`
	RedisStatus          service.ComponentStatus `json:"redis_status,omitempty"`
	CircuitBreakerStatus string                  `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  gateway.BreakerState    `json:"circuit_breaker_state,omitempty"`
	Timestamp            time.Time               `json:"timestamp"`
}
