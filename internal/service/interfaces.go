package service

import (
	"context"
	"time"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mock.go -package=mocks

// CampaignService manages campaign lifecycle up to the send loop.
type CampaignService interface {
	CreateCampaign(tenantID int64, name string, templateID int64) (*models.Campaign, error)
	GetCampaign(tenantID, campaignID int64) (*models.Campaign, error)
	ListCampaigns(tenantID int64, page, limit int) ([]*models.Campaign, int64, error)

	// BuildSnapshot freezes the campaign's recipient list and returns its
	// size.
	BuildSnapshot(tenantID, campaignID int64) (int, error)

	Confirm(tenantID, campaignID int64) error
	Schedule(tenantID, campaignID int64, scheduledFor time.Time) error
	ListRecipients(tenantID, campaignID int64, page, limit int) ([]*models.CampaignRecipient, int64, error)
}

// DispatcherService drives campaign sends through the gateway.
type DispatcherService interface {
	// Dispatch runs one send pass over the campaign's pending recipients
	// and returns this invocation's counts.
	Dispatch(ctx context.Context, tenantID, campaignID int64) (*DispatchResult, error)

	// DispatchDue dispatches scheduled campaigns whose send time has
	// passed. Invoked by the scheduler tick.
	DispatchDue(ctx context.Context) error
}

// DirectoryService is the thin data-access surface around the dispatch
// core: contacts, templates and the message audit log.
type DirectoryService interface {
	CreateContact(contact *models.Contact) (*models.Contact, error)
	ListContacts(tenantID int64, page, limit int) ([]*models.Contact, int64, error)
	CreateTemplate(template *models.Template) (*models.Template, error)
	ListTemplates(tenantID int64, page, limit int) ([]*models.Template, int64, error)
	ListMessageLog(tenantID int64, page, limit int) ([]*models.MessageLogEntry, int64, error)
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth() *HealthStatus
}

// GatewayStats exposes the gateway circuit breaker for health reporting.
type GatewayStats interface {
	BreakerState() gateway.BreakerState
	BreakerCounts() (requests, failures uint32)
}
