package worker

import (
	"context"
	"fmt"

	"movie_backend/config"
	"movie_backend/internal/logger"
	syncengine "movie_backend/internal/sync"

	"github.com/robfig/cron/v3"
)

// SyncSchedulerWorker chạy daily catalog sync theo cron expression và timezone cấu hình.
// Một entry duy nhất: daily sync từng kind → popular + trending refresh → cleanup.
type SyncSchedulerWorker struct {
	runner   *syncengine.Runner
	cronExpr string
	timezone string
}

// NewSyncSchedulerWorker tạo mới SyncSchedulerWorker từ config.
func NewSyncSchedulerWorker(cfg *config.Configuration, runner *syncengine.Runner) *SyncSchedulerWorker {
	return &SyncSchedulerWorker{
		runner:   runner,
		cronExpr: cfg.SyncCron,
		timezone: cfg.SyncTimezone,
	}
}

// Start đăng ký cron entry và chạy cho đến khi context bị hủy.
func (w *SyncSchedulerWorker) Start(ctx context.Context) error {
	log := logger.GetAppLogger()

	location, err := loadLocation(w.timezone)
	if err != nil {
		return err
	}

	scheduler := cron.New(cron.WithLocation(location))
	_, err = scheduler.AddFunc(w.cronExpr, func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("⏰ [SCHEDULER] Panic trong scheduled sync, chờ lần chạy tiếp theo")
			}
		}()
		w.runner.RunScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("đăng ký cron %q thất bại: %w", w.cronExpr, err)
	}

	log.WithFields(map[string]interface{}{
		"cron":     w.cronExpr,
		"timezone": w.timezone,
	}).Info("⏰ [SCHEDULER] Starting Sync Scheduler Worker...")

	scheduler.Start()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	// Chờ entry đang chạy kết thúc trước khi thoát
	<-stopCtx.Done()
	log.Info("⏰ [SCHEDULER] Sync Scheduler Worker stopped")
	return nil
}
