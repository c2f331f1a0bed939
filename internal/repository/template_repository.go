package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepository{
		db: db,
	}
}

// Create inserts a new template.
func (r *templateRepository) Create(template *models.Template) (int64, error) {
	query := `
		INSERT INTO templates (tenant_id, name, category, language, body, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.Get(&id, query, template.TenantID, template.Name, template.Category,
		template.Language, template.Body, template.IsActive, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to create template: %w", err)
	}

	return id, nil
}

// GetByID retrieves a template scoped to its tenant.
func (r *templateRepository) GetByID(tenantID, id int64) (*models.Template, error) {
	query := `
		SELECT id, tenant_id, name, category, language, body, is_active, created_at
		FROM templates
		WHERE id = $1 AND tenant_id = $2
	`

	var template models.Template
	err := r.db.Get(&template, query, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}

// List retrieves a tenant's templates with pagination.
func (r *templateRepository) List(tenantID int64, offset, limit int) ([]*models.Template, error) {
	query := `
		SELECT id, tenant_id, name, category, language, body, is_active, created_at
		FROM templates
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var templates []*models.Template
	err := r.db.Select(&templates, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

// CountByTenant returns the number of templates owned by a tenant.
func (r *templateRepository) CountByTenant(tenantID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM templates WHERE tenant_id = $1`

	err := r.db.Get(&count, query, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}

	return count, nil
}
