package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

type messageLogRepository struct {
	db *sqlx.DB
}

func NewMessageLogRepository(db *sqlx.DB) MessageLogRepository {
	return &messageLogRepository{
		db: db,
	}
}

// Create appends one entry to the audit trail. Entries are never updated.
func (r *messageLogRepository) Create(entry *models.MessageLogEntry) (int64, error) {
	query := `
		INSERT INTO message_log (tenant_id, campaign_id, direction, to_number, status, body, provider_message_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	direction := entry.Direction
	if direction == "" {
		direction = models.MessageDirectionOutbound
	}

	var id int64
	err := r.db.Get(&id, query, entry.TenantID, entry.CampaignID, direction,
		entry.ToNumber, entry.Status, entry.Body, entry.ProviderMessageID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to create message log entry: %w", err)
	}

	return id, nil
}

// ListByTenant retrieves a tenant's message log, newest first.
func (r *messageLogRepository) ListByTenant(tenantID int64, offset, limit int) ([]*models.MessageLogEntry, error) {
	query := `
		SELECT id, tenant_id, campaign_id, direction, to_number, status, body, provider_message_id, created_at
		FROM message_log
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var entries []*models.MessageLogEntry
	err := r.db.Select(&entries, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list message log: %w", err)
	}

	return entries, nil
}

// CountByTenant returns the size of a tenant's message log.
func (r *messageLogRepository) CountByTenant(tenantID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM message_log WHERE tenant_id = $1`

	err := r.db.Get(&count, query, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count message log: %w", err)
	}

	return count, nil
}
