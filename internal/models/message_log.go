// Package models defines the typed records shared across the application.
package models

import (
	"database/sql"
	"time"
)

// MessageDirection is the direction of a logged message.
type MessageDirection string

const (
	MessageDirectionOutbound MessageDirection = "outbound"
)

// MessageStatus is the outcome recorded for one send attempt.
type MessageStatus string

const (
	MessageStatusSent   MessageStatus = "sent"
	MessageStatusFailed MessageStatus = "failed"
)

// MessageLogEntry is one row of the append-only send audit trail. Entries
// are written once per attempt and never updated.
type MessageLogEntry struct {
	ID                int64            `db:"id" json:"id"`
	TenantID          int64            `db:"tenant_id" json:"tenant_id"`
	CampaignID        sql.NullInt64    `db:"campaign_id" json:"campaign_id,omitempty"`
	Direction         MessageDirection `db:"direction" json:"direction"`
	ToNumber          string           `db:"to_number" json:"to_number"`
	Status            MessageStatus    `db:"status" json:"status"`
	Body              string           `db:"body" json:"body"`
	ProviderMessageID sql.NullString   `db:"provider_message_id" json:"provider_message_id,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
}
