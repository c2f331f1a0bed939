package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/config"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/locker"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/render"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository"
)

// dispatchable lists the statuses a campaign may hold when dispatch starts.
// completed is included so a re-dispatch can drain recipients left pending
// by an interrupted run, and sending so a campaign stranded mid-dispatch by
// a crash stays drainable once the dead run's lock TTL expires. The Redis
// lock, always held before this transition, is what serializes live
// dispatchers.
var dispatchable = []models.CampaignStatus{
	models.CampaignStatusDraft,
	models.CampaignStatusConfirmed,
	models.CampaignStatusScheduled,
	models.CampaignStatusSending,
	models.CampaignStatusCompleted,
}

type dispatcherService struct {
	cfg     *config.DispatcherConfig
	repo    repository.Repository
	gateway gateway.Client
	locks   locker.Locker
	limiter *rate.Limiter
	batch   int
	logger  *zap.Logger
}

func NewDispatcherService(
	cfg *config.Config,
	repo repository.Repository,
	gatewayClient gateway.Client,
	locks locker.Locker,
	logger *zap.Logger,
) DispatcherService {
	limit := rate.Inf
	burst := 1
	if cfg.Dispatcher.RatePerSecond > 0 {
		limit = rate.Limit(cfg.Dispatcher.RatePerSecond)
		burst = cfg.Dispatcher.RatePerSecond
	}

	return &dispatcherService{
		cfg:     &cfg.Dispatcher,
		repo:    repo,
		gateway: gatewayClient,
		locks:   locks,
		limiter: rate.NewLimiter(limit, burst),
		batch:   cfg.Scheduler.BatchSize,
		logger:  logger,
	}
}

// Dispatch runs one send pass over the campaign's pending recipients.
// Every pending recipient gets exactly one gateway attempt; failures are
// recorded on the recipient row and the message log, never retried within
// this invocation, and never abort the loop.
func (s *dispatcherService) Dispatch(ctx context.Context, tenantID, campaignID int64) (*DispatchResult, error) {
	campaign, err := s.repo.Campaign().GetByID(tenantID, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	template, err := s.repo.Template().GetByID(tenantID, campaign.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	// Cheap pre-check so a fully drained campaign stays a no-op without
	// taking the lock; the authoritative pending set is re-read under it.
	pending, err := s.repo.Recipient().ListPending(campaignID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		// Idempotent empty run: campaign status stays untouched.
		return &DispatchResult{}, nil
	}

	lockTTL := time.Duration(s.cfg.LockTTLSeconds) * time.Second
	acquired, err := s.locks.Acquire(ctx, campaignID, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire dispatch lock: %w", err)
	}
	if !acquired {
		return nil, ErrDispatchInProgress
	}
	defer func() {
		if err := s.locks.Release(context.Background(), campaignID); err != nil {
			s.logger.Warn("Failed to release dispatch lock",
				zap.Int64("campaignID", campaignID),
				zap.Error(err))
		}
	}()

	// The sending transition happens before the first gateway call so a
	// crash mid-loop is visible as a campaign stuck in sending.
	ok, err := s.repo.Campaign().UpdateStatus(campaignID, dispatchable, models.CampaignStatusSending)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDispatchInProgress
	}

	// Re-read under the lock: an overlapping run may have drained rows
	// between the pre-check and Acquire, and those must not be sent twice.
	pending, err = s.repo.Recipient().ListPending(campaignID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Dispatch started",
		zap.Int64("tenantID", tenantID),
		zap.Int64("campaignID", campaignID),
		zap.Int("pendingCount", len(pending)))

	// The send loop runs detached from the caller's context: an aborted
	// HTTP request or scheduler tick must leave unattempted rows pending,
	// not mark them failed.
	result := s.sendAll(context.WithoutCancel(ctx), tenantID, template, pending)

	if err := s.repo.Campaign().FinishDispatch(campaignID, result.Sent, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("Dispatch completed",
		zap.Int64("campaignID", campaignID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))

	return result, nil
}

// sendAll runs the recipient loop with bounded concurrency. Each recipient
// row is updated independently and exactly once, so the workers share
// nothing but the counters.
func (s *dispatcherService) sendAll(ctx context.Context, tenantID int64, template *models.Template, pending []*models.CampaignRecipient) *DispatchResult {
	workers := s.cfg.WorkerCount
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan *models.CampaignRecipient)
	var mu sync.Mutex
	result := &DispatchResult{}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for recipient := range jobs {
				sent := s.sendOne(ctx, tenantID, template, recipient)

				mu.Lock()
				if sent {
					result.Sent++
				} else {
					result.Failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, recipient := range pending {
		jobs <- recipient
	}
	close(jobs)
	wg.Wait()

	return result
}

// sendOne attempts delivery to a single recipient and records the outcome.
// Any panic or unexpected error inside this boundary fails this recipient
// only.
func (s *dispatcherService) sendOne(ctx context.Context, tenantID int64, template *models.Template, recipient *models.CampaignRecipient) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while processing recipient",
				zap.Int64("recipientID", recipient.ID),
				zap.Any("panic", r))
			s.recordFailure(tenantID, recipient, "", fmt.Sprintf("internal error: %v", r))
			sent = false
		}
	}()

	if err := s.limiter.Wait(ctx); err != nil {
		s.recordFailure(tenantID, recipient, "", err.Error())
		return false
	}

	// Personalization reflects the contact as it is now; the destination
	// number stays the snapshot-time copy.
	contact, err := s.repo.Contact().GetByID(tenantID, recipient.ContactID)
	if err != nil {
		s.logger.Warn("Failed to load contact for personalization",
			zap.Int64("contactID", recipient.ContactID),
			zap.Error(err))
		contact = nil
	}

	body := render.Render(template.Body, contact)

	sendResult, err := s.gateway.Send(ctx, recipient.Phone, body)
	if err != nil {
		s.recordFailure(tenantID, recipient, body, err.Error())
		return false
	}

	s.recordSuccess(tenantID, recipient, body, sendResult.ProviderMessageID)
	return true
}

func (s *dispatcherService) recordSuccess(tenantID int64, recipient *models.CampaignRecipient, body, providerMessageID string) {
	entry := &models.MessageLogEntry{
		TenantID:   tenantID,
		CampaignID: sql.NullInt64{Int64: recipient.CampaignID, Valid: true},
		Direction:  models.MessageDirectionOutbound,
		ToNumber:   recipient.Phone,
		Status:     models.MessageStatusSent,
		Body:       body,
	}
	if providerMessageID != "" {
		entry.ProviderMessageID = sql.NullString{String: providerMessageID, Valid: true}
	}

	if _, err := s.repo.MessageLog().Create(entry); err != nil {
		s.logger.Error("Failed to write message log entry",
			zap.Int64("recipientID", recipient.ID),
			zap.Error(err))
	}

	if err := s.repo.Recipient().MarkSent(recipient.ID, time.Now()); err != nil {
		s.logger.Error("Failed to mark recipient sent",
			zap.Int64("recipientID", recipient.ID),
			zap.Error(err))
	}
}

func (s *dispatcherService) recordFailure(tenantID int64, recipient *models.CampaignRecipient, body, errorMsg string) {
	entry := &models.MessageLogEntry{
		TenantID:   tenantID,
		CampaignID: sql.NullInt64{Int64: recipient.CampaignID, Valid: true},
		Direction:  models.MessageDirectionOutbound,
		ToNumber:   recipient.Phone,
		Status:     models.MessageStatusFailed,
		Body:       body,
	}

	if _, err := s.repo.MessageLog().Create(entry); err != nil {
		s.logger.Error("Failed to write message log entry",
			zap.Int64("recipientID", recipient.ID),
			zap.Error(err))
	}

	if err := s.repo.Recipient().MarkFailed(recipient.ID, errorMsg); err != nil {
		s.logger.Error("Failed to mark recipient failed",
			zap.Int64("recipientID", recipient.ID),
			zap.Error(err))
	}
}

// DispatchDue dispatches every scheduled campaign whose send time has
// passed. The manual send endpoint and this path converge on Dispatch.
func (s *dispatcherService) DispatchDue(ctx context.Context) error {
	limit := s.batch
	if limit < 1 {
		limit = 10
	}

	due, err := s.repo.Campaign().ListDue(time.Now(), limit)
	if err != nil {
		return fmt.Errorf("failed to list due campaigns: %w", err)
	}

	for _, campaign := range due {
		result, err := s.Dispatch(ctx, campaign.TenantID, campaign.ID)
		if err != nil {
			if errors.Is(err, ErrDispatchInProgress) {
				continue
			}
			s.logger.Error("Failed to dispatch due campaign",
				zap.Int64("campaignID", campaign.ID),
				zap.Error(err))
			continue
		}

		s.logger.Info("Due campaign dispatched",
			zap.Int64("campaignID", campaign.ID),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed))
	}

	return nil
}
