package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

type recipientRepository struct {
	db *sqlx.DB
}

func NewRecipientRepository(db *sqlx.DB) RecipientRepository {
	return &recipientRepository{
		db: db,
	}
}

// BulkCreate inserts the recipient snapshot in one statement. The unique
// (campaign_id, contact_id) constraint rejects duplicate snapshots.
func (r *recipientRepository) BulkCreate(recipients []*models.CampaignRecipient) error {
	if len(recipients) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]map[string]interface{}, 0, len(recipients))
	for _, rec := range recipients {
		rows = append(rows, map[string]interface{}{
			"campaign_id": rec.CampaignID,
			"contact_id":  rec.ContactID,
			"phone":       rec.Phone,
			"status":      models.RecipientStatusPending,
			"created_at":  now,
		})
	}

	query := `
		INSERT INTO campaign_recipients (campaign_id, contact_id, phone, status, created_at)
		VALUES (:campaign_id, :contact_id, :phone, :status, :created_at)
	`

	if _, err := r.db.NamedExec(query, rows); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateRecipient
		}
		return fmt.Errorf("failed to create campaign recipients: %w", err)
	}

	return nil
}

// CountByCampaign returns the number of snapshot rows for a campaign.
func (r *recipientRepository) CountByCampaign(campaignID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM campaign_recipients WHERE campaign_id = $1`

	err := r.db.Get(&count, query, campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to count campaign recipients: %w", err)
	}

	return count, nil
}

// ListPending retrieves a campaign's pending recipients in creation order.
func (r *recipientRepository) ListPending(campaignID int64) ([]*models.CampaignRecipient, error) {
	query := `
		SELECT id, campaign_id, contact_id, phone, status, error, sent_at, created_at
		FROM campaign_recipients
		WHERE campaign_id = $1 AND status = $2
		ORDER BY id ASC
	`

	var recipients []*models.CampaignRecipient
	err := r.db.Select(&recipients, query, campaignID, models.RecipientStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending recipients: %w", err)
	}

	return recipients, nil
}

// ListByCampaign retrieves recipients with pagination.
func (r *recipientRepository) ListByCampaign(campaignID int64, offset, limit int) ([]*models.CampaignRecipient, error) {
	query := `
		SELECT id, campaign_id, contact_id, phone, status, error, sent_at, created_at
		FROM campaign_recipients
		WHERE campaign_id = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	var recipients []*models.CampaignRecipient
	err := r.db.Select(&recipients, query, campaignID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign recipients: %w", err)
	}

	return recipients, nil
}

// MarkSent transitions a pending recipient to sent. Rows already sent or
// failed are never touched again.
func (r *recipientRepository) MarkSent(id int64, sentAt time.Time) error {
	query := `
		UPDATE campaign_recipients
		SET status = $2, sent_at = $3, error = NULL
		WHERE id = $1 AND status = $4
	`

	if _, err := r.db.Exec(query, id, models.RecipientStatusSent, sentAt, models.RecipientStatusPending); err != nil {
		return fmt.Errorf("failed to mark recipient sent: %w", err)
	}

	return nil
}

// MarkFailed transitions a pending recipient to failed with the error text.
func (r *recipientRepository) MarkFailed(id int64, errorMsg string) error {
	query := `
		UPDATE campaign_recipients
		SET status = $2, error = $3
		WHERE id = $1 AND status = $4
	`

	if _, err := r.db.Exec(query, id, models.RecipientStatusFailed, errorMsg, models.RecipientStatusPending); err != nil {
		return fmt.Errorf("failed to mark recipient failed: %w", err)
	}

	return nil
}
