package sync

import (
	"context"
	"fmt"
	"time"

	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/logger"
	"movie_backend/internal/tmdb"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobStore là phần service sync job mà runner dùng. Interface để test với fake.
type JobStore interface {
	CreateQueued(ctx context.Context, target string, params catalogmodels.SyncJobParams) (catalogmodels.SyncJob, error)
	MarkRunning(ctx context.Context, jobID primitive.ObjectID) error
	UpdateProgress(ctx context.Context, jobID primitive.ObjectID, processed, synced, failed int64) error
	MarkCompleted(ctx context.Context, jobID primitive.ObjectID, processed, synced, failed int64) error
	MarkFailed(ctx context.Context, jobID primitive.ObjectID, runErr error) error
}

// Runner gắn engine với vòng đời sync job: nhận trigger, chạy nền, cập nhật trạng thái.
type Runner struct {
	engine *Engine
	jobs   JobStore
}

// NewRunner tạo runner mới.
func NewRunner(engine *Engine, jobs JobStore) *Runner {
	return &Runner{engine: engine, jobs: jobs}
}

// Trigger tạo job ở trạng thái queued, chạy nền và trả về job ngay lập tức.
// Các trigger chồng nhau không loại trừ lẫn nhau; upsert theo tmdbId nên
// chạy trùng chỉ tốn API call, không hỏng dữ liệu.
func (r *Runner) Trigger(ctx context.Context, target string, params catalogmodels.SyncJobParams) (catalogmodels.SyncJob, error) {
	job, err := r.jobs.CreateQueued(ctx, target, params)
	if err != nil {
		return catalogmodels.SyncJob{}, err
	}

	// Chạy với context riêng để không chết theo request HTTP
	go r.Run(context.Background(), job)

	return job, nil
}

// RunScheduled là entry point của cron: tạo job target all rồi chạy đồng bộ
// trong goroutine của scheduler.
func (r *Runner) RunScheduled(ctx context.Context) {
	job, err := r.jobs.CreateQueued(ctx, catalogmodels.SyncTargetAll, catalogmodels.SyncJobParams{})
	if err != nil {
		logger.GetSyncLogger().WithError(err).Error("⏰ [SCHEDULER] Không tạo được sync job theo lịch")
		return
	}
	r.Run(ctx, job)
}

// Run chạy một job từ đầu đến cuối và cập nhật trạng thái của nó.
// Panic trong run được recover và ghi vào job thay vì làm sập process.
func (r *Runner) Run(ctx context.Context, job catalogmodels.SyncJob) {
	log := logger.GetSyncLogger()
	progress := NewProgress()

	defer func() {
		if rec := recover(); rec != nil {
			log.WithFields(map[string]interface{}{
				"jobId": job.ID.Hex(),
				"panic": rec,
			}).Error("💥 [SYNC] Panic trong sync run")
			processed, synced, failed := progress.Snapshot()
			_ = r.jobs.UpdateProgress(ctx, job.ID, processed, synced, failed)
			_ = r.jobs.MarkFailed(ctx, job.ID, fmt.Errorf("panic: %v", rec))
		}
	}()

	if err := r.jobs.MarkRunning(ctx, job.ID); err != nil {
		log.WithError(err).WithField("jobId", job.ID.Hex()).Error("💥 [SYNC] Không chuyển được job sang running")
		return
	}

	log.WithFields(map[string]interface{}{
		"jobId":  job.ID.Hex(),
		"target": job.Target,
	}).Info("🚀 [SYNC] Bắt đầu sync run")

	err := r.execute(ctx, job, progress)

	processed, synced, failed := progress.Snapshot()
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"jobId":     job.ID.Hex(),
			"processed": processed,
			"synced":    synced,
			"failed":    failed,
		}).Error("❌ [SYNC] Sync run thất bại")
		_ = r.jobs.UpdateProgress(ctx, job.ID, processed, synced, failed)
		_ = r.jobs.MarkFailed(ctx, job.ID, err)
		return
	}

	log.WithFields(map[string]interface{}{
		"jobId":     job.ID.Hex(),
		"processed": processed,
		"synced":    synced,
		"failed":    failed,
	}).Info("🎉 [SYNC] Sync run hoàn tất")
	_ = r.jobs.MarkCompleted(ctx, job.ID, processed, synced, failed)
}

// execute chạy các bước của job theo target.
func (r *Runner) execute(ctx context.Context, job catalogmodels.SyncJob, progress *Progress) error {
	opts, err := dailyOptionsFromParams(job.Params)
	if err != nil {
		return err
	}

	// Limit được đọc lại từ database mỗi run, admin đổi cấu hình có hiệu lực ngay
	settings, err := r.engine.settings.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	switch job.Target {
	case catalogmodels.SyncTargetMovies:
		if err := r.engine.SyncDaily(ctx, tmdb.KindMovie, opts, progress); err != nil {
			return err
		}
		return r.engine.CleanupKind(ctx, tmdb.KindMovie, settings.MovieCatalogLimit)

	case catalogmodels.SyncTargetTV:
		if err := r.engine.SyncDaily(ctx, tmdb.KindTV, opts, progress); err != nil {
			return err
		}
		return r.engine.CleanupKind(ctx, tmdb.KindTV, settings.TVCatalogLimit)

	case catalogmodels.SyncTargetPopular:
		if err := r.engine.SyncPopular(ctx, tmdb.KindMovie, settings.MovieCatalogLimit, progress); err != nil {
			return err
		}
		if err := r.engine.SyncPopular(ctx, tmdb.KindTV, settings.TVCatalogLimit, progress); err != nil {
			return err
		}
		return r.engine.SyncTrending(ctx, settings.TrendingCatalogLimit, progress)

	case catalogmodels.SyncTargetAll, catalogmodels.SyncTargetToday:
		// Lỗi daily của một kind không chặn kind còn lại (partial success)
		log := logger.GetSyncLogger()
		for _, kind := range []tmdb.MediaKind{tmdb.KindMovie, tmdb.KindTV} {
			if err := r.engine.SyncDaily(ctx, kind, opts, progress); err != nil {
				if ctx.Err() != nil {
					return err
				}
				log.WithError(err).WithField("kind", string(kind)).Error("❌ [SYNC] Daily sync kind thất bại, chạy tiếp kind khác")
			}
		}
		if err := r.engine.SyncPopular(ctx, tmdb.KindMovie, settings.MovieCatalogLimit, progress); err != nil {
			return err
		}
		if err := r.engine.SyncPopular(ctx, tmdb.KindTV, settings.TVCatalogLimit, progress); err != nil {
			return err
		}
		if err := r.engine.SyncTrending(ctx, settings.TrendingCatalogLimit, progress); err != nil {
			return err
		}
		// Cleanup chạy sau cùng; lỗi cleanup chỉ log, không rollback
		r.engine.CleanupAll(ctx)
		return nil

	default:
		return common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Target không hợp lệ: %s", job.Target), common.StatusBadRequest, nil)
	}
}

// dailyOptionsFromParams chuyển params của job sang DailyOptions.
func dailyOptionsFromParams(params catalogmodels.SyncJobParams) (DailyOptions, error) {
	opts := DailyOptions{
		BatchSize:      params.BatchSize,
		StartFromBatch: params.StartFromBatch,
	}
	if params.Date != "" {
		date, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return DailyOptions{}, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Ngày không hợp lệ: %s", params.Date), common.StatusBadRequest, nil)
		}
		opts.Date = date
	}
	return opts, nil
}
