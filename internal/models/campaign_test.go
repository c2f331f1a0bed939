package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

func TestCampaignStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.CampaignStatus
		to      models.CampaignStatus
		allowed bool
	}{
		{"draft to confirmed", models.CampaignStatusDraft, models.CampaignStatusConfirmed, true},
		{"draft to scheduled", models.CampaignStatusDraft, models.CampaignStatusScheduled, true},
		{"draft to sending", models.CampaignStatusDraft, models.CampaignStatusSending, true},
		{"draft to completed", models.CampaignStatusDraft, models.CampaignStatusCompleted, false},
		{"confirmed to scheduled", models.CampaignStatusConfirmed, models.CampaignStatusScheduled, true},
		{"confirmed to sending", models.CampaignStatusConfirmed, models.CampaignStatusSending, true},
		{"confirmed to draft", models.CampaignStatusConfirmed, models.CampaignStatusDraft, false},
		{"scheduled to sending", models.CampaignStatusScheduled, models.CampaignStatusSending, true},
		{"scheduled to draft", models.CampaignStatusScheduled, models.CampaignStatusDraft, false},
		{"scheduled to confirmed", models.CampaignStatusScheduled, models.CampaignStatusConfirmed, false},
		{"sending to completed", models.CampaignStatusSending, models.CampaignStatusCompleted, true},
		{"sending to draft", models.CampaignStatusSending, models.CampaignStatusDraft, false},
		{"sending to sending", models.CampaignStatusSending, models.CampaignStatusSending, false},
		{"completed re-dispatch", models.CampaignStatusCompleted, models.CampaignStatusSending, true},
		{"completed to draft", models.CampaignStatusCompleted, models.CampaignStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestCampaignStatus_Dispatchable(t *testing.T) {
	assert.True(t, models.CampaignStatusDraft.Dispatchable())
	assert.True(t, models.CampaignStatusConfirmed.Dispatchable())
	assert.True(t, models.CampaignStatusScheduled.Dispatchable())
	assert.True(t, models.CampaignStatusCompleted.Dispatchable())
	assert.False(t, models.CampaignStatusSending.Dispatchable())
}

func TestCampaignStatus_IsValid(t *testing.T) {
	for _, s := range []models.CampaignStatus{
		models.CampaignStatusDraft,
		models.CampaignStatusConfirmed,
		models.CampaignStatusScheduled,
		models.CampaignStatusSending,
		models.CampaignStatusCompleted,
	} {
		assert.True(t, s.IsValid())
	}

	assert.False(t, models.CampaignStatus("archived").IsValid())
	assert.False(t, models.CampaignStatus("").IsValid())
}
