package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository"
)

type campaignService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewCampaignService(repo repository.Repository, logger *zap.Logger) CampaignService {
	return &campaignService{
		repo:   repo,
		logger: logger,
	}
}

// CreateCampaign creates a draft campaign referencing one of the tenant's
// templates.
func (s *campaignService) CreateCampaign(tenantID int64, name string, templateID int64) (*models.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: campaign name is required", ErrValidation)
	}

	template, err := s.repo.Template().GetByID(tenantID, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	campaign := &models.Campaign{
		TenantID:   tenantID,
		Name:       name,
		TemplateID: templateID,
		Status:     models.CampaignStatusDraft,
	}

	id, err := s.repo.Campaign().Create(campaign)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Campaign().GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Campaign created",
		zap.Int64("tenantID", tenantID),
		zap.Int64("campaignID", id),
		zap.Int64("templateID", templateID))

	return created, nil
}

func (s *campaignService) GetCampaign(tenantID, campaignID int64) (*models.Campaign, error) {
	campaign, err := s.repo.Campaign().GetByID(tenantID, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *campaignService) ListCampaigns(tenantID int64, page, limit int) ([]*models.Campaign, int64, error) {
	offset := (page - 1) * limit

	campaigns, err := s.repo.Campaign().List(tenantID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Campaign().CountByTenant(tenantID)
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// BuildSnapshot materializes the campaign's immutable recipient list: every
// opted-in contact of the tenant at this moment, with phone numbers frozen
// as they are now. Later contact edits do not change who the campaign
// reaches.
func (s *campaignService) BuildSnapshot(tenantID, campaignID int64) (int, error) {
	campaign, err := s.repo.Campaign().GetByID(tenantID, campaignID)
	if err != nil {
		return 0, err
	}
	if campaign == nil {
		return 0, ErrCampaignNotFound
	}
	if campaign.Status != models.CampaignStatusDraft {
		return 0, ErrInvalidCampaignState
	}

	template, err := s.repo.Template().GetByID(tenantID, campaign.TemplateID)
	if err != nil {
		return 0, err
	}
	if template == nil {
		return 0, ErrTemplateNotFound
	}

	existing, err := s.repo.Recipient().CountByCampaign(campaignID)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, ErrAlreadySnapshotted
	}

	contacts, err := s.repo.Contact().ListOptedIn(tenantID)
	if err != nil {
		return 0, err
	}
	if len(contacts) == 0 {
		return 0, ErrNoRecipients
	}

	recipients := make([]*models.CampaignRecipient, 0, len(contacts))
	for _, contact := range contacts {
		recipients = append(recipients, &models.CampaignRecipient{
			CampaignID: campaignID,
			ContactID:  contact.ID,
			Phone:      contact.Phone,
			Status:     models.RecipientStatusPending,
		})
	}

	if err := s.repo.Recipient().BulkCreate(recipients); err != nil {
		// Two concurrent snapshot calls can both pass the count check; the
		// unique constraint decides the race.
		if errors.Is(err, repository.ErrDuplicateRecipient) {
			return 0, ErrAlreadySnapshotted
		}
		return 0, err
	}

	if err := s.repo.Campaign().SetTotalRecipients(campaignID, len(recipients)); err != nil {
		return 0, err
	}

	s.logger.Info("Recipient snapshot built",
		zap.Int64("tenantID", tenantID),
		zap.Int64("campaignID", campaignID),
		zap.Int("recipientCount", len(recipients)))

	return len(recipients), nil
}

// Confirm moves a draft campaign to confirmed.
func (s *campaignService) Confirm(tenantID, campaignID int64) error {
	campaign, err := s.repo.Campaign().GetByID(tenantID, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	ok, err := s.repo.Campaign().UpdateStatus(campaignID,
		[]models.CampaignStatus{models.CampaignStatusDraft}, models.CampaignStatusConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyConfirmed
	}

	return nil
}

// Schedule sets a future send time on a draft or confirmed campaign.
func (s *campaignService) Schedule(tenantID, campaignID int64, scheduledFor time.Time) error {
	if !scheduledFor.After(time.Now()) {
		return ErrScheduleInPast
	}

	campaign, err := s.repo.Campaign().GetByID(tenantID, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	ok, err := s.repo.Campaign().Schedule(campaignID, scheduledFor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCampaignState
	}

	s.logger.Info("Campaign scheduled",
		zap.Int64("tenantID", tenantID),
		zap.Int64("campaignID", campaignID),
		zap.Time("scheduledFor", scheduledFor))

	return nil
}

func (s *campaignService) ListRecipients(tenantID, campaignID int64, page, limit int) ([]*models.CampaignRecipient, int64, error) {
	campaign, err := s.repo.Campaign().GetByID(tenantID, campaignID)
	if err != nil {
		return nil, 0, err
	}
	if campaign == nil {
		return nil, 0, ErrCampaignNotFound
	}

	offset := (page - 1) * limit

	recipients, err := s.repo.Recipient().ListByCampaign(campaignID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Recipient().CountByCampaign(campaignID)
	if err != nil {
		return nil, 0, err
	}

	return recipients, total, nil
}
