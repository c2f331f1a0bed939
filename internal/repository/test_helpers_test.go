package repository_test

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func insertTestContact(db *sqlx.DB, tenantID int64, name, phone string, optedOut bool) (int64, error) {
	var id int64
	query := `
		INSERT INTO contacts (tenant_id, name, phone, is_opted_out)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := db.QueryRow(query, tenantID, name, phone, optedOut).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert test contact: %w", err)
	}

	return id, nil
}

func insertTestTemplate(db *sqlx.DB, tenantID int64, name, body string) (int64, error) {
	var id int64
	query := `
		INSERT INTO templates (tenant_id, name, body)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := db.QueryRow(query, tenantID, name, body).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert test template: %w", err)
	}

	return id, nil
}

func insertTestCampaign(db *sqlx.DB, tenantID int64, name string, templateID int64, status string) (int64, error) {
	var id int64
	query := `
		INSERT INTO campaigns (tenant_id, name, template_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := db.QueryRow(query, tenantID, name, templateID, status).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert test campaign: %w", err)
	}

	return id, nil
}

func insertTestRecipient(db *sqlx.DB, campaignID, contactID int64, phone, status string) (int64, error) {
	var id int64
	query := `
		INSERT INTO campaign_recipients (campaign_id, contact_id, phone, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := db.QueryRow(query, campaignID, contactID, phone, status).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert test recipient: %w", err)
	}

	return id, nil
}

// seedCampaign inserts a template and a campaign for the tenant and returns
// both ids.
func seedCampaign(db *sqlx.DB, tenantID int64, status string) (campaignID, templateID int64, err error) {
	templateID, err = insertTestTemplate(db, tenantID, "welcome", "Hi {{name}}")
	if err != nil {
		return 0, 0, err
	}

	campaignID, err = insertTestCampaign(db, tenantID, "spring promo", templateID, status)
	if err != nil {
		return 0, 0, err
	}

	return campaignID, templateID, nil
}
