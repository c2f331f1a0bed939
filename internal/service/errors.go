package service

import "errors"

var (
	// ErrCampaignNotFound is returned when a campaign does not exist or
	// belongs to another tenant.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrTemplateNotFound is returned when a campaign's template reference
	// is dangling or belongs to another tenant.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNoRecipients is returned when a snapshot selection yields zero
	// contacts. The campaign stays in draft, nothing is inserted.
	ErrNoRecipients = errors.New("no opted-in contacts to snapshot")

	// ErrAlreadySnapshotted is returned when recipient rows already exist
	// for the campaign.
	ErrAlreadySnapshotted = errors.New("campaign already has a recipient snapshot")

	// ErrAlreadyConfirmed is returned when confirming a campaign that has
	// left draft.
	ErrAlreadyConfirmed = errors.New("campaign is already confirmed")

	// ErrInvalidCampaignState is returned when an action is not legal in
	// the campaign's current status.
	ErrInvalidCampaignState = errors.New("action not allowed in current campaign state")

	// ErrScheduleInPast is returned when scheduling with a non-future time.
	ErrScheduleInPast = errors.New("scheduled time must be in the future")

	// ErrDispatchInProgress is returned when another dispatch holds the
	// campaign's lock or won the status race.
	ErrDispatchInProgress = errors.New("campaign dispatch is already in progress")

	// ErrValidation wraps input errors detected before any write.
	ErrValidation = errors.New("validation failed")
)
