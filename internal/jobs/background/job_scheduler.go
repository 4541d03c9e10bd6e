package background

import (
	"context"
	"time"

	"panditconnect/internal/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler runs the periodic cache-refresh job.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	businessSvc services.BusinessService
	logger      *zap.Logger
}

func NewJobScheduler(businessSvc services.BusinessService, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		businessSvc: businessSvc,
		logger:      logger,
	}
	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) registerJobs() error {
	// Signed app-file URLs expire after 24 hours. Re-mirroring the remote
	// record twice a day keeps the fallback cache from holding a dead link.
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(12*time.Hour),
		gocron.NewTask(js.refreshCachedRecord, context.Background()),
		gocron.WithName("business-record-cache-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) refreshCachedRecord(ctx context.Context) {
	if err := js.businessSvc.RefreshCache(ctx); err != nil {
		js.logger.Warn("cache refresh failed", zap.Error(err))
	}
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}
