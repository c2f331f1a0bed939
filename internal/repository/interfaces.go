package repository

import (
	"errors"
	"time"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/repository_mock.go -package=mocks

// ErrDuplicateRecipient is returned by BulkCreate when a snapshot row for
// the (campaign, contact) pair already exists.
var ErrDuplicateRecipient = errors.New("recipient already exists for campaign")

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	// Campaign returns campaign repository
	Campaign() CampaignRepository

	// Recipient returns campaign recipient repository
	Recipient() RecipientRepository

	// Contact returns contact repository
	Contact() ContactRepository

	// Template returns template repository
	Template() TemplateRepository

	// MessageLog returns message log repository
	MessageLog() MessageLogRepository
}

// CampaignRepository interface defines campaign operations.
type CampaignRepository interface {
	Create(campaign *models.Campaign) (int64, error)
	GetByID(tenantID, id int64) (*models.Campaign, error)
	List(tenantID int64, offset, limit int) ([]*models.Campaign, error)
	CountByTenant(tenantID int64) (int64, error)

	// UpdateStatus performs a compare-and-set status transition. It reports
	// false when the campaign was not in any of the from statuses.
	UpdateStatus(id int64, from []models.CampaignStatus, to models.CampaignStatus) (bool, error)

	// Schedule sets scheduled_for and moves a draft or confirmed campaign to
	// scheduled. Reports false when the campaign is past those states.
	Schedule(id int64, scheduledFor time.Time) (bool, error)

	SetTotalRecipients(id int64, total int) error

	// FinishDispatch completes a sending campaign, adding this run's sent
	// count to the cumulative total.
	FinishDispatch(id int64, sentDelta int, lastSentAt time.Time) error

	// ListDue returns scheduled campaigns whose scheduled_for has passed.
	ListDue(now time.Time, limit int) ([]*models.Campaign, error)
}

// RecipientRepository interface defines campaign recipient operations.
type RecipientRepository interface {
	BulkCreate(recipients []*models.CampaignRecipient) error
	CountByCampaign(campaignID int64) (int64, error)
	ListPending(campaignID int64) ([]*models.CampaignRecipient, error)
	ListByCampaign(campaignID int64, offset, limit int) ([]*models.CampaignRecipient, error)
	MarkSent(id int64, sentAt time.Time) error
	MarkFailed(id int64, errorMsg string) error
}

// ContactRepository interface defines contact operations.
type ContactRepository interface {
	Create(contact *models.Contact) (int64, error)
	GetByID(tenantID, id int64) (*models.Contact, error)
	ListOptedIn(tenantID int64) ([]*models.Contact, error)
	List(tenantID int64, offset, limit int) ([]*models.Contact, error)
	CountByTenant(tenantID int64) (int64, error)
}

// TemplateRepository interface defines template operations.
type TemplateRepository interface {
	Create(template *models.Template) (int64, error)
	GetByID(tenantID, id int64) (*models.Template, error)
	List(tenantID int64, offset, limit int) ([]*models.Template, error)
	CountByTenant(tenantID int64) (int64, error)
}

// MessageLogRepository interface defines message log operations.
type MessageLogRepository interface {
	Create(entry *models.MessageLogEntry) (int64, error)
	ListByTenant(tenantID int64, offset, limit int) ([]*models.MessageLogEntry, error)
	CountByTenant(tenantID int64) (int64, error)
}
