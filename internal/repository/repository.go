// Package repository implements Postgres persistence for the application.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db         *sqlx.DB
	campaign   CampaignRepository
	recipient  RecipientRepository
	contact    ContactRepository
	template   TemplateRepository
	messageLog MessageLogRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:         db,
		campaign:   NewCampaignRepository(db),
		recipient:  NewRecipientRepository(db),
		contact:    NewContactRepository(db),
		template:   NewTemplateRepository(db),
		messageLog: NewMessageLogRepository(db),
	}
}

// Campaign returns the campaign repository.
func (r *repositoryImpl) Campaign() CampaignRepository {
	return r.campaign
}

// Recipient returns the campaign recipient repository.
func (r *repositoryImpl) Recipient() RecipientRepository {
	return r.recipient
}

// Contact returns the contact repository.
func (r *repositoryImpl) Contact() ContactRepository {
	return r.contact
}

// Template returns the template repository.
func (r *repositoryImpl) Template() TemplateRepository {
	return r.template
}

// MessageLog returns the message log repository.
func (r *repositoryImpl) MessageLog() MessageLogRepository {
	return r.messageLog
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
