package sync

import (
	"context"
	stdsync "sync"
	"time"

	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/logger"
	"movie_backend/internal/tmdb"
	"movie_backend/internal/utility"
)

// DailyOptions là tham số của một lần daily sync, lấy từ config và
// có thể override khi trigger thủ công.
type DailyOptions struct {
	Date           time.Time // Ngày export chỉ định; zero = tự tìm ngày mới nhất
	BatchSize      int       // Số id mỗi batch; <= 0 dùng config
	StartFromBatch int       // Resume từ batch thứ k (đánh số từ 0)
}

// SyncDaily chạy full sync một kind từ file export id hàng ngày của TMDB.
// Không tìm thấy file export trong khoảng lùi → log và bỏ qua kind này,
// không coi là lỗi (các kind khác vẫn chạy tiếp).
func (e *Engine) SyncDaily(ctx context.Context, kind tmdb.MediaKind, opts DailyOptions, progress *Progress) error {
	log := logger.GetSyncLogger()

	date := opts.Date
	if date.IsZero() {
		found, err := e.exporter.FindAvailableExportDate(ctx, kind, time.Now(), e.cfg.SyncExportLookback)
		if err != nil {
			return err
		}
		if found.IsZero() {
			log.WithField("kind", string(kind)).Warn("📅 [DAILY] Không có file export khả dụng, bỏ qua kind này")
			return nil
		}
		date = found
	}

	records, err := e.exporter.DownloadExportIDs(ctx, e.exporter.ExportURL(kind, date))
	if err != nil {
		return err
	}

	// Movie export chứa cả nội dung adult, lọc trước khi sync
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		if kind == tmdb.KindMovie && record.Adult {
			continue
		}
		ids = append(ids, record.ID)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = e.cfg.SyncBatchSize
	}
	batches := utility.Chunk(ids, batchSize)

	log.WithFields(map[string]interface{}{
		"kind":           string(kind),
		"date":           date.Format("2006-01-02"),
		"ids":            len(ids),
		"batches":        len(batches),
		"batchSize":      batchSize,
		"startFromBatch": opts.StartFromBatch,
	}).Info("📅 [DAILY] Bắt đầu daily sync")

	stagger := time.Duration(e.cfg.SyncItemStaggerMs) * time.Millisecond
	batchPause := time.Duration(e.cfg.SyncBatchPauseMs) * time.Millisecond

	for batchIndex, batch := range batches {
		// Resume: các batch trước startFromBatch đã xử lý ở lần chạy trước
		if batchIndex < opts.StartFromBatch {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var wg stdsync.WaitGroup
		for itemIndex, tmdbID := range batch {
			wg.Add(1)
			go func(itemIndex int, tmdbID int64) {
				defer wg.Done()
				// So le thời điểm bắt đầu để không dồn request cùng lúc
				if stagger > 0 {
					if err := sleepSync(ctx, time.Duration(itemIndex)*stagger); err != nil {
						progress.MarkFailed()
						return
					}
				}
				if err := e.syncOneItem(ctx, kind, tmdbID); err != nil {
					// Lỗi từng item được đếm, không dừng batch
					log.WithError(err).WithFields(map[string]interface{}{
						"kind":   string(kind),
						"tmdbId": tmdbID,
					}).Warn("📅 [DAILY] Sync item thất bại, bỏ qua")
					progress.MarkFailed()
					return
				}
				progress.MarkSynced()
			}(itemIndex, tmdbID)
		}
		wg.Wait()

		if progress.ShouldLog(progressLogInterval) {
			processed, synced, failed := progress.Snapshot()
			log.WithFields(map[string]interface{}{
				"kind":      string(kind),
				"batch":     batchIndex + 1,
				"batches":   len(batches),
				"processed": processed,
				"synced":    synced,
				"failed":    failed,
			}).Info("📅 [DAILY] Tiến trình daily sync")
		}

		if batchIndex < len(batches)-1 {
			if err := sleepSync(ctx, batchPause); err != nil {
				return err
			}
		}
	}

	processed, synced, failed := progress.Snapshot()
	log.WithFields(map[string]interface{}{
		"kind":      string(kind),
		"date":      date.Format("2006-01-02"),
		"processed": processed,
		"synced":    synced,
		"failed":    failed,
	}).Info("✅ [DAILY] Daily sync hoàn tất")
	return nil
}

// syncOneItem kéo chi tiết một item và ghi đè vào catalog, kèm bản dịch nếu bật.
func (e *Engine) syncOneItem(ctx context.Context, kind tmdb.MediaKind, tmdbID int64) error {
	detail, err := e.provider.GetDetails(ctx, kind, tmdbID, "")
	if err != nil {
		return err
	}

	if _, err := e.storeFor(kind).UpsertByTmdbID(ctx, itemFromDetail(detail)); err != nil {
		return err
	}

	// Bản dịch là phụ: lỗi bản dịch không làm item fail
	if e.cfg.SyncTranslateEnabled {
		e.syncItemTranslations(ctx, kind, tmdbID)
	}
	return nil
}

// syncItemTranslations kéo bản dịch của một item cho các ngôn ngữ cấu hình.
func (e *Engine) syncItemTranslations(ctx context.Context, kind tmdb.MediaKind, tmdbID int64) {
	log := logger.GetSyncLogger()
	delay := time.Duration(e.cfg.SyncTranslateDelayMs) * time.Millisecond

	for i, lang := range e.cfg.SyncTranslateLangs {
		if i > 0 {
			if err := sleepSync(ctx, delay); err != nil {
				return
			}
		}

		data, err := e.provider.GetTranslation(ctx, kind, tmdbID, lang)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"kind":     string(kind),
				"tmdbId":   tmdbID,
				"language": lang,
			}).Warn("🌐 [TRANSLATE] Kéo bản dịch thất bại, bỏ qua")
			continue
		}
		if data == nil || (data.Title == "" && data.Overview == "") {
			continue
		}

		translation := catalogmodels.ContentTranslation{
			TmdbID:    tmdbID,
			MediaType: string(kind),
			Language:  lang,
			Title:     data.Title,
			Overview:  data.Overview,
		}
		if _, err := e.translations.UpsertTranslation(ctx, translation); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"kind":     string(kind),
				"tmdbId":   tmdbID,
				"language": lang,
			}).Warn("🌐 [TRANSLATE] Ghi bản dịch thất bại, bỏ qua")
		}
	}
}
