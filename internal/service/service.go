// Package service implements the business logic of the campaign dispatch
// pipeline.
package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/config"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/gateway"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/locker"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository"
)

type Service struct {
	Campaign   CampaignService
	Dispatcher DispatcherService
	Directory  DirectoryService
	Scheduler  SchedulerService
	Health     HealthService
}

func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	gatewayClient := gateway.NewHTTPClient(&cfg.Gateway, logger)
	locks := locker.NewRedisLocker(redisClient)

	campaignService := NewCampaignService(repo, logger)
	dispatcherService := NewDispatcherService(cfg, repo, gatewayClient, locks, logger)
	directoryService := NewDirectoryService(repo, logger)
	schedulerService := NewSchedulerService(cfg, dispatcherService, logger)
	healthService := NewHealthService(repo, redisClient, schedulerService, gatewayClient)

	return &Service{
		Campaign:   campaignService,
		Dispatcher: dispatcherService,
		Directory:  directoryService,
		Scheduler:  schedulerService,
		Health:     healthService,
	}
}
