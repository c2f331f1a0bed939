package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{
		db: db,
	}
}

// Create inserts a new contact.
func (r *contactRepository) Create(contact *models.Contact) (int64, error) {
	query := `
		INSERT INTO contacts (tenant_id, name, phone, custom_fields, is_opted_out, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	fields := contact.CustomFields
	if fields == nil {
		fields = models.CustomFields{}
	}

	var id int64
	err := r.db.Get(&id, query, contact.TenantID, contact.Name, contact.Phone,
		fields, contact.IsOptedOut, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to create contact: %w", err)
	}

	return id, nil
}

// GetByID retrieves a contact scoped to its tenant.
func (r *contactRepository) GetByID(tenantID, id int64) (*models.Contact, error) {
	query := `
		SELECT id, tenant_id, name, phone, custom_fields, is_opted_out, created_at
		FROM contacts
		WHERE id = $1 AND tenant_id = $2
	`

	var contact models.Contact
	err := r.db.Get(&contact, query, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return &contact, nil
}

// ListOptedIn retrieves every contact of the tenant that has not opted out,
// in creation order. This is the campaign snapshot selection.
func (r *contactRepository) ListOptedIn(tenantID int64) ([]*models.Contact, error) {
	query := `
		SELECT id, tenant_id, name, phone, custom_fields, is_opted_out, created_at
		FROM contacts
		WHERE tenant_id = $1 AND is_opted_out = FALSE
		ORDER BY created_at ASC, id ASC
	`

	var contacts []*models.Contact
	err := r.db.Select(&contacts, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opted-in contacts: %w", err)
	}

	return contacts, nil
}

// List retrieves a tenant's contacts with pagination.
func (r *contactRepository) List(tenantID int64, offset, limit int) ([]*models.Contact, error) {
	query := `
		SELECT id, tenant_id, name, phone, custom_fields, is_opted_out, created_at
		FROM contacts
		WHERE tenant_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var contacts []*models.Contact
	err := r.db.Select(&contacts, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

// CountByTenant returns the number of contacts owned by a tenant.
func (r *contactRepository) CountByTenant(tenantID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM contacts WHERE tenant_id = $1`

	err := r.db.Get(&count, query, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return count, nil
}
