package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/config"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway"
	gatewaymocks "github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway/mocks"
	lockermocks "github.com/post4contenthub-svg/enatalk-web-sub000/internal/locker/mocks"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository/mocks"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/service"
)

func dispatcherTestConfig() *config.Config {
	return &config.Config{
		Dispatcher: config.DispatcherConfig{
			WorkerCount:    1,
			LockTTLSeconds: 60,
		},
		Scheduler: config.SchedulerConfig{
			BatchSize: 10,
		},
	}
}

type dispatcherFixture struct {
	repo       *mocks.MockRepository
	campaigns  *mocks.MockCampaignRepository
	recipients *mocks.MockRecipientRepository
	contacts   *mocks.MockContactRepository
	templates  *mocks.MockTemplateRepository
	messageLog *mocks.MockMessageLogRepository
	gateway    *gatewaymocks.MockClient
	locks      *lockermocks.MockLocker
}

func newDispatcherFixture(ctrl *gomock.Controller) *dispatcherFixture {
	f := &dispatcherFixture{
		repo:       mocks.NewMockRepository(ctrl),
		campaigns:  mocks.NewMockCampaignRepository(ctrl),
		recipients: mocks.NewMockRecipientRepository(ctrl),
		contacts:   mocks.NewMockContactRepository(ctrl),
		templates:  mocks.NewMockTemplateRepository(ctrl),
		messageLog: mocks.NewMockMessageLogRepository(ctrl),
		gateway:    gatewaymocks.NewMockClient(ctrl),
		locks:      lockermocks.NewMockLocker(ctrl),
	}

	f.repo.EXPECT().Campaign().Return(f.campaigns).AnyTimes()
	f.repo.EXPECT().Recipient().Return(f.recipients).AnyTimes()
	f.repo.EXPECT().Contact().Return(f.contacts).AnyTimes()
	f.repo.EXPECT().Template().Return(f.templates).AnyTimes()
	f.repo.EXPECT().MessageLog().Return(f.messageLog).AnyTimes()

	return f
}

func (f *dispatcherFixture) service() service.DispatcherService {
	return service.NewDispatcherService(dispatcherTestConfig(), f.repo, f.gateway, f.locks, zap.NewNop())
}

func pendingRecipient(id, campaignID, contactID int64, phone string) *models.CampaignRecipient {
	return &models.CampaignRecipient{
		ID:         id,
		CampaignID: campaignID,
		ContactID:  contactID,
		Phone:      phone,
		Status:     models.RecipientStatusPending,
	}
}

// Three pending recipients: first accepted, second rejected by the provider,
// third times out. The run records one sent and two failed, marks every row
// exactly once, and still completes the campaign.
func TestDispatcherService_Dispatch_MixedOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusConfirmed}
	template := &models.Template{ID: 3, TenantID: testTenantID, Body: "Hi {{name}}"}
	pending := []*models.CampaignRecipient{
		pendingRecipient(1, 42, 100, "+905550000001"),
		pendingRecipient(2, 42, 101, "+905550000002"),
		pendingRecipient(3, 42, 102, "+905550000003"),
	}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return(pending, nil).Times(2)

	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), time.Minute).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(true, nil)

	f.contacts.EXPECT().GetByID(testTenantID, int64(100)).Return(&models.Contact{ID: 100, Name: "Asha"}, nil)
	f.contacts.EXPECT().GetByID(testTenantID, int64(101)).Return(&models.Contact{ID: 101, Name: "Deniz"}, nil)
	f.contacts.EXPECT().GetByID(testTenantID, int64(102)).Return(&models.Contact{ID: 102, Name: "Mete"}, nil)

	f.gateway.EXPECT().Send(gomock.Any(), "+905550000001", "Hi Asha").
		Return(&gateway.SendResult{ProviderMessageID: "wamid.1"}, nil)
	f.gateway.EXPECT().Send(gomock.Any(), "+905550000002", "Hi Deniz").
		Return(nil, errors.New("gateway returned status 400"))
	f.gateway.EXPECT().Send(gomock.Any(), "+905550000003", "Hi Mete").
		Return(nil, context.DeadlineExceeded)

	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil).Times(3)
	f.recipients.EXPECT().MarkSent(int64(1), gomock.Any()).Return(nil)
	f.recipients.EXPECT().MarkFailed(int64(2), "gateway returned status 400").Return(nil)
	f.recipients.EXPECT().MarkFailed(int64(3), context.DeadlineExceeded.Error()).Return(nil)

	f.campaigns.EXPECT().FinishDispatch(int64(42), 1, gomock.Any()).Return(nil)

	result, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 2, result.Failed)
}

// A run with no pending recipients returns zero counts without touching the
// campaign status or the lock.
func TestDispatcherService_Dispatch_EmptyRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusCompleted}
	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(&models.Template{ID: 3, Body: "hi"}, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return([]*models.CampaignRecipient{}, nil)

	result, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 0, result.Failed)
}

func TestDispatcherService_Dispatch_LockHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusConfirmed}
	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(&models.Template{ID: 3, Body: "hi"}, nil)
	f.recipients.EXPECT().ListPending(int64(42)).
		Return([]*models.CampaignRecipient{pendingRecipient(1, 42, 100, "+905550000001")}, nil)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(false, nil)

	_, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	assert.ErrorIs(t, err, service.ErrDispatchInProgress)
}

// A failed status transition, as when the campaign row disappears under the
// lock, makes the run back off and release its lock.
func TestDispatcherService_Dispatch_StatusRaceLost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusConfirmed}
	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(&models.Template{ID: 3, Body: "hi"}, nil)
	f.recipients.EXPECT().ListPending(int64(42)).
		Return([]*models.CampaignRecipient{pendingRecipient(1, 42, 100, "+905550000001")}, nil)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(false, nil)

	_, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	assert.ErrorIs(t, err, service.ErrDispatchInProgress)
}

// A completed campaign with leftover pending rows, as after a crashed run,
// can be dispatched again; only the remaining rows get gateway attempts.
func TestDispatcherService_Dispatch_ResumesLeftoverPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusCompleted, SentCount: 2}
	template := &models.Template{ID: 3, Body: "hello"}
	leftover := []*models.CampaignRecipient{pendingRecipient(9, 42, 104, "+905550000009")}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return(leftover, nil).Times(2)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(true, nil)

	f.contacts.EXPECT().GetByID(testTenantID, int64(104)).Return(&models.Contact{ID: 104}, nil)
	f.gateway.EXPECT().Send(gomock.Any(), "+905550000009", "hello").
		Return(&gateway.SendResult{ProviderMessageID: "wamid.9"}, nil)
	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil)
	f.recipients.EXPECT().MarkSent(int64(9), gomock.Any()).Return(nil)
	f.campaigns.EXPECT().FinishDispatch(int64(42), 1, gomock.Any()).Return(nil)

	result, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

// A campaign stuck in sending after a crashed run is recoverable: once the
// dead run's lock has expired, a new dispatch acquires the lock, passes the
// status transition with sending as a valid source, and drains the leftover
// rows.
func TestDispatcherService_Dispatch_ResumesStuckSending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusSending}
	template := &models.Template{ID: 3, Body: "hello"}
	leftover := []*models.CampaignRecipient{pendingRecipient(7, 42, 103, "+905550000007")}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return(leftover, nil).Times(2)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)

	// The mock mirrors the repository's status IN (from) semantics so a
	// from-set without sending would dead-end the campaign here.
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).
		DoAndReturn(func(_ int64, from []models.CampaignStatus, _ models.CampaignStatus) (bool, error) {
			for _, status := range from {
				if status == models.CampaignStatusSending {
					return true, nil
				}
			}
			return false, nil
		})

	f.contacts.EXPECT().GetByID(testTenantID, int64(103)).Return(nil, nil)
	f.gateway.EXPECT().Send(gomock.Any(), "+905550000007", "hello").
		Return(&gateway.SendResult{ProviderMessageID: "wamid.7"}, nil)
	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil)
	f.recipients.EXPECT().MarkSent(int64(7), gomock.Any()).Return(nil)
	f.campaigns.EXPECT().FinishDispatch(int64(42), 1, gomock.Any()).Return(nil)

	result, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

// The pending set is re-read once the lock is held. Rows drained by an
// overlapping run in the pre-check window get no second gateway attempt.
func TestDispatcherService_Dispatch_ReloadsPendingUnderLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusCompleted}
	template := &models.Template{ID: 3, Body: "hi"}
	stale := []*models.CampaignRecipient{pendingRecipient(1, 42, 100, "+905550000001")}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)

	// First read sees the row; by the time the lock is held the other run
	// has sent it.
	f.recipients.EXPECT().ListPending(int64(42)).Return(stale, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return([]*models.CampaignRecipient{}, nil)

	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(true, nil)
	f.campaigns.EXPECT().FinishDispatch(int64(42), 0, gomock.Any()).Return(nil)

	result, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 0, result.Failed)
}

// A caller abandoning its request must not poison the run: the send loop is
// detached from the inbound context, so every recipient still gets its
// attempt instead of being marked failed on context errors.
func TestDispatcherService_Dispatch_SurvivesRequestCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusConfirmed}
	template := &models.Template{ID: 3, Body: "hi"}
	pending := []*models.CampaignRecipient{
		pendingRecipient(1, 42, 100, "+905550000001"),
		pendingRecipient(2, 42, 101, "+905550000002"),
	}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return(pending, nil).Times(2)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(true, nil)

	f.contacts.EXPECT().GetByID(testTenantID, gomock.Any()).Return(nil, nil).Times(2)
	f.gateway.EXPECT().Send(gomock.Any(), gomock.Any(), "hi").
		Return(&gateway.SendResult{ProviderMessageID: "wamid"}, nil).Times(2)
	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil).Times(2)
	f.recipients.EXPECT().MarkSent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.campaigns.EXPECT().FinishDispatch(int64(42), 2, gomock.Any()).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.service().Dispatch(ctx, testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 0, result.Failed)
}

// Each pending recipient gets exactly one gateway attempt per run, even with
// several workers pulling from the same queue.
func TestDispatcherService_Dispatch_OneAttemptPerRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	const total = 20
	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusConfirmed}
	template := &models.Template{ID: 3, Body: "hey"}

	pending := make([]*models.CampaignRecipient, 0, total)
	for i := 0; i < total; i++ {
		pending = append(pending, pendingRecipient(int64(i+1), 42, int64(200+i), "+90555000"))
	}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return(pending, nil).Times(2)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(true, nil)

	f.contacts.EXPECT().GetByID(testTenantID, gomock.Any()).Return(nil, nil).Times(total)

	var mu sync.Mutex
	attempts := 0
	f.gateway.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string) (*gateway.SendResult, error) {
			mu.Lock()
			attempts++
			mu.Unlock()
			return &gateway.SendResult{ProviderMessageID: "wamid"}, nil
		}).Times(total)

	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil).Times(total)
	f.recipients.EXPECT().MarkSent(gomock.Any(), gomock.Any()).Return(nil).Times(total)
	f.campaigns.EXPECT().FinishDispatch(int64(42), total, gomock.Any()).Return(nil)

	cfg := dispatcherTestConfig()
	cfg.Dispatcher.WorkerCount = 4
	svc := service.NewDispatcherService(cfg, f.repo, f.gateway, f.locks, zap.NewNop())

	result, err := svc.Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, total, attempts)
	assert.Equal(t, total, result.Sent)
	assert.Equal(t, 0, result.Failed)
}

// A missing contact row does not fail the recipient: the snapshot phone is
// still valid, so the send goes out with tokens resolved to empty strings.
func TestDispatcherService_Dispatch_ContactDeletedAfterSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	campaign := &models.Campaign{ID: 42, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusConfirmed}
	template := &models.Template{ID: 3, Body: "Hi {{name}}"}
	pending := []*models.CampaignRecipient{pendingRecipient(1, 42, 100, "+905550000001")}

	f.campaigns.EXPECT().GetByID(testTenantID, int64(42)).Return(campaign, nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(template, nil)
	f.recipients.EXPECT().ListPending(int64(42)).Return(pending, nil).Times(2)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(42), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(42)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(42), gomock.Any(), models.CampaignStatusSending).Return(true, nil)

	f.contacts.EXPECT().GetByID(testTenantID, int64(100)).Return(nil, nil)
	f.gateway.EXPECT().Send(gomock.Any(), "+905550000001", "Hi ").
		Return(&gateway.SendResult{ProviderMessageID: "wamid.1"}, nil)
	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil)
	f.recipients.EXPECT().MarkSent(int64(1), gomock.Any()).Return(nil)
	f.campaigns.EXPECT().FinishDispatch(int64(42), 1, gomock.Any()).Return(nil)

	result, err := f.service().Dispatch(context.Background(), testTenantID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

func TestDispatcherService_Dispatch_CampaignNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	f.campaigns.EXPECT().GetByID(testTenantID, int64(99)).Return(nil, nil)

	_, err := f.service().Dispatch(context.Background(), testTenantID, 99)
	assert.ErrorIs(t, err, service.ErrCampaignNotFound)
}

func TestDispatcherService_DispatchDue_SkipsBusyCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(ctrl)

	due := []*models.Campaign{
		{ID: 1, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusScheduled},
		{ID: 2, TenantID: testTenantID, TemplateID: 3, Status: models.CampaignStatusScheduled},
	}
	f.campaigns.EXPECT().ListDue(gomock.Any(), 10).Return(due, nil)

	// Campaign 1 loses the lock race and is skipped; campaign 2 drains
	// normally.
	f.campaigns.EXPECT().GetByID(testTenantID, int64(1)).Return(due[0], nil)
	f.templates.EXPECT().GetByID(testTenantID, int64(3)).Return(&models.Template{ID: 3, Body: "hi"}, nil).Times(2)
	f.recipients.EXPECT().ListPending(int64(1)).
		Return([]*models.CampaignRecipient{pendingRecipient(1, 1, 100, "+905550000001")}, nil)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(1), gomock.Any()).Return(false, nil)

	f.campaigns.EXPECT().GetByID(testTenantID, int64(2)).Return(due[1], nil)
	f.recipients.EXPECT().ListPending(int64(2)).
		Return([]*models.CampaignRecipient{pendingRecipient(2, 2, 101, "+905550000002")}, nil).
		Times(2)
	f.locks.EXPECT().Acquire(gomock.Any(), int64(2), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().Release(gomock.Any(), int64(2)).Return(nil)
	f.campaigns.EXPECT().UpdateStatus(int64(2), gomock.Any(), models.CampaignStatusSending).Return(true, nil)
	f.contacts.EXPECT().GetByID(testTenantID, int64(101)).Return(nil, nil)
	f.gateway.EXPECT().Send(gomock.Any(), "+905550000002", "hi").
		Return(&gateway.SendResult{ProviderMessageID: "wamid.2"}, nil)
	f.messageLog.EXPECT().Create(gomock.Any()).Return(int64(1), nil)
	f.recipients.EXPECT().MarkSent(int64(2), gomock.Any()).Return(nil)
	f.campaigns.EXPECT().FinishDispatch(int64(2), 1, gomock.Any()).Return(nil)

	err := f.service().DispatchDue(context.Background())
	assert.NoError(t, err)
}
