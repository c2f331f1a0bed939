package models

import (
	"database/sql"
	"time"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusConfirmed CampaignStatus = "confirmed"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusSending   CampaignStatus = "sending"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign represents one bulk outbound message job.
type Campaign struct {
	ID              int64          `db:"id" json:"id"`
	TenantID        int64          `db:"tenant_id" json:"tenant_id"`
	Name            string         `db:"name" json:"name"`
	TemplateID      int64          `db:"template_id" json:"template_id"`
	Status          CampaignStatus `db:"status" json:"status"`
	ScheduledFor    sql.NullTime   `db:"scheduled_for" json:"scheduled_for,omitempty"`
	TotalRecipients int            `db:"total_recipients" json:"total_recipients"`
	SentCount       int            `db:"sent_count" json:"sent_count"`
	LastSentAt      sql.NullTime   `db:"last_sent_at" json:"last_sent_at,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// transitions maps each status to the set of statuses it may move to.
// Transitions are one-directional; nothing re-enters draft.
var transitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:     {CampaignStatusConfirmed, CampaignStatusScheduled, CampaignStatusSending},
	CampaignStatusConfirmed: {CampaignStatusScheduled, CampaignStatusSending},
	CampaignStatusScheduled: {CampaignStatusSending},
	CampaignStatusSending:   {CampaignStatusCompleted},
	CampaignStatusCompleted: {CampaignStatusSending},
}

// CanTransition reports whether a campaign in status s may move to status to.
// completed -> sending is allowed so a re-dispatch can drain recipients left
// pending by an interrupted run.
func (s CampaignStatus) CanTransition(to CampaignStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known campaign status.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusConfirmed, CampaignStatusScheduled,
		CampaignStatusSending, CampaignStatusCompleted:
		return true
	}
	return false
}

// Dispatchable reports whether a campaign in status s may enter the send loop.
func (s CampaignStatus) Dispatchable() bool {
	return s.CanTransition(CampaignStatusSending)
}
