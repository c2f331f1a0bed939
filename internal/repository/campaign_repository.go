package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

type campaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

// Create inserts a new campaign in draft status.
func (r *campaignRepository) Create(campaign *models.Campaign) (int64, error) {
	query := `
		INSERT INTO campaigns (tenant_id, name, template_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.Get(&id, query, campaign.TenantID, campaign.Name, campaign.TemplateID,
		models.CampaignStatusDraft, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to create campaign: %w", err)
	}

	return id, nil
}

// GetByID retrieves a campaign scoped to its tenant.
func (r *campaignRepository) GetByID(tenantID, id int64) (*models.Campaign, error) {
	query := `
		SELECT id, tenant_id, name, template_id, status, scheduled_for,
		       total_recipients, sent_count, last_sent_at, created_at
		FROM campaigns
		WHERE id = $1 AND tenant_id = $2
	`

	var campaign models.Campaign
	err := r.db.Get(&campaign, query, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	if !campaign.Status.IsValid() {
		return nil, fmt.Errorf("campaign %d has malformed status %q", campaign.ID, campaign.Status)
	}

	return &campaign, nil
}

// List retrieves a tenant's campaigns with pagination.
func (r *campaignRepository) List(tenantID int64, offset, limit int) ([]*models.Campaign, error) {
	query := `
		SELECT id, tenant_id, name, template_id, status, scheduled_for,
		       total_recipients, sent_count, last_sent_at, created_at
		FROM campaigns
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var campaigns []*models.Campaign
	err := r.db.Select(&campaigns, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

// CountByTenant returns the number of campaigns owned by a tenant.
func (r *campaignRepository) CountByTenant(tenantID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM campaigns WHERE tenant_id = $1`

	err := r.db.Get(&count, query, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return count, nil
}

// UpdateStatus performs a compare-and-set transition. Zero rows affected
// means another caller won the race or the campaign is in the wrong state.
func (r *campaignRepository) UpdateStatus(id int64, from []models.CampaignStatus, to models.CampaignStatus) (bool, error) {
	query, args, err := sqlx.In(
		`UPDATE campaigns SET status = ? WHERE id = ? AND status IN (?)`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to build status update: %w", err)
	}

	result, err := r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("failed to update campaign status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

// Schedule sets scheduled_for on a draft or confirmed campaign.
func (r *campaignRepository) Schedule(id int64, scheduledFor time.Time) (bool, error) {
	query := `
		UPDATE campaigns
		SET status = $2, scheduled_for = $3
		WHERE id = $1 AND status IN ($4, $5)
	`

	result, err := r.db.Exec(query, id, models.CampaignStatusScheduled, scheduledFor,
		models.CampaignStatusDraft, models.CampaignStatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to schedule campaign: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

// SetTotalRecipients records the snapshot size on the campaign.
func (r *campaignRepository) SetTotalRecipients(id int64, total int) error {
	query := `UPDATE campaigns SET total_recipients = $2 WHERE id = $1`

	if _, err := r.db.Exec(query, id, total); err != nil {
		return fmt.Errorf("failed to set total recipients: %w", err)
	}

	return nil
}

// FinishDispatch moves a sending campaign to completed and accumulates this
// run's sent count into the total.
func (r *campaignRepository) FinishDispatch(id int64, sentDelta int, lastSentAt time.Time) error {
	query := `
		UPDATE campaigns
		SET status = $2,
		    sent_count = sent_count + $3,
		    last_sent_at = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.Exec(query, id, models.CampaignStatusCompleted, sentDelta,
		lastSentAt, models.CampaignStatusSending)
	if err != nil {
		return fmt.Errorf("failed to finish dispatch: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("campaign %d was not in sending state", id)
	}

	return nil
}

// ListDue retrieves scheduled campaigns whose send time has passed.
func (r *campaignRepository) ListDue(now time.Time, limit int) ([]*models.Campaign, error) {
	query := `
		SELECT id, tenant_id, name, template_id, status, scheduled_for,
		       total_recipients, sent_count, last_sent_at, created_at
		FROM campaigns
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for ASC
		LIMIT $3
	`

	var campaigns []*models.Campaign
	err := r.db.Select(&campaigns, query, models.CampaignStatusScheduled, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due campaigns: %w", err)
	}

	return campaigns, nil
}
