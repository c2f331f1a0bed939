package models

import (
	"database/sql"
	"time"
)

// RecipientStatus is the delivery state of one campaign recipient.
type RecipientStatus string

const (
	RecipientStatusPending RecipientStatus = "pending"
	RecipientStatusSent    RecipientStatus = "sent"
	RecipientStatusFailed  RecipientStatus = "failed"
)

// CampaignRecipient is one row of a campaign's recipient snapshot. The phone
// number is frozen at snapshot time; later edits to the contact do not change
// who the campaign reached.
type CampaignRecipient struct {
	ID         int64           `db:"id" json:"id"`
	CampaignID int64           `db:"campaign_id" json:"campaign_id"`
	ContactID  int64           `db:"contact_id" json:"contact_id"`
	Phone      string          `db:"phone" json:"phone"`
	Status     RecipientStatus `db:"status" json:"status"`
	Error      sql.NullString  `db:"error" json:"error,omitempty"`
	SentAt     sql.NullTime    `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
