package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/config"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/scheduler"
)

type schedulerService struct {
	scheduler  *scheduler.Scheduler
	dispatcher DispatcherService
	logger     *zap.Logger
}

// NewSchedulerService wraps the ticker loop that fires due-campaign
// dispatch. The "scheduled time reached" trigger and the manual send
// endpoint both end up in the same dispatch entry point.
func NewSchedulerService(
	cfg *config.Config,
	dispatcher DispatcherService,
	logger *zap.Logger,
) SchedulerService {
	interval := time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute

	svc := &schedulerService{
		dispatcher: dispatcher,
		logger:     logger,
	}

	svc.scheduler = scheduler.NewScheduler(logger, interval, svc.executeDispatchDue)
	return svc
}

func (s *schedulerService) Start() error {
	ctx := context.Background()
	return s.scheduler.Start(ctx)
}

func (s *schedulerService) Stop() error {
	return s.scheduler.Stop()
}

func (s *schedulerService) IsRunning() bool {
	return s.scheduler.IsRunning()
}

func (s *schedulerService) executeDispatchDue(ctx context.Context) error {
	return s.dispatcher.DispatchDue(ctx)
}
