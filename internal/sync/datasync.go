package sync

import (
	"context"
	"time"

	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/logger"
	"movie_backend/internal/tmdb"
)

// progressLogInterval là khoảng cách tối thiểu giữa hai dòng log tiến trình
const progressLogInterval = 10 * time.Second

// EffectivePageCap tính số page cần kéo: min của totalPages do provider trả về,
// trần 500 page của TMDB, và số page đủ để đạt limit (khi limit > 0).
// limit < 0 nghĩa là không giới hạn.
func EffectivePageCap(totalPages int, limit int64, pageSize int) int {
	pages := totalPages
	if pages > tmdb.MaxPages {
		pages = tmdb.MaxPages
	}
	if limit > 0 {
		// ceil(limit / pageSize)
		needed := int((limit + int64(pageSize) - 1) / int64(pageSize))
		if needed < pages {
			pages = needed
		}
	}
	return pages
}

// SyncPopular kéo danh sách popular của một kind và insert các item chưa có.
// Item đã tồn tại không bị chạm vào (lần ghi đầu tiên thắng); daily sync mới là
// nơi làm mới dữ liệu. limit == 0 bỏ qua hoàn toàn, không gọi API nào.
func (e *Engine) SyncPopular(ctx context.Context, kind tmdb.MediaKind, limit int64, progress *Progress) error {
	log := logger.GetSyncLogger()

	if limit == 0 {
		log.WithField("kind", string(kind)).Info("⏭️ [POPULAR] Limit = 0, bỏ qua sync popular")
		return nil
	}

	store := e.storeFor(kind)
	pageCap := tmdb.MaxPages
	pageDelay := time.Duration(e.cfg.SyncPageDelayMs) * time.Millisecond

	for page := 1; page <= pageCap; page++ {
		result, err := e.provider.GetPopular(ctx, kind, page, "")
		if err != nil {
			return err
		}
		if page == 1 {
			pageCap = EffectivePageCap(result.TotalPages, limit, tmdb.PageSize)
		}
		if len(result.Results) == 0 {
			log.WithFields(map[string]interface{}{
				"kind": string(kind),
				"page": page,
			}).Info("📄 [POPULAR] Page rỗng, dừng sớm")
			break
		}

		for _, src := range result.Results {
			if _, err := store.InsertIfAbsent(ctx, itemFromList(src)); err != nil {
				log.WithError(err).WithFields(map[string]interface{}{
					"kind":   string(kind),
					"tmdbId": src.ID,
				}).Warn("📄 [POPULAR] Ghi item thất bại, bỏ qua")
				progress.MarkFailed()
				continue
			}
			progress.MarkSynced()
		}

		if progress.ShouldLog(progressLogInterval) {
			processed, synced, failed := progress.Snapshot()
			log.WithFields(map[string]interface{}{
				"kind":      string(kind),
				"page":      page,
				"pageCap":   pageCap,
				"processed": processed,
				"synced":    synced,
				"failed":    failed,
			}).Info("📄 [POPULAR] Tiến trình sync popular")
		}

		if page < pageCap {
			if err := sleepSync(ctx, pageDelay); err != nil {
				return err
			}
		}
	}

	processed, synced, failed := progress.Snapshot()
	log.WithFields(map[string]interface{}{
		"kind":      string(kind),
		"processed": processed,
		"synced":    synced,
		"failed":    failed,
	}).Info("✅ [POPULAR] Sync popular hoàn tất")
	return nil
}

// SyncTrending thay mới danh sách trending, giữ lại trạng thái ẩn do admin đặt.
// Thứ tự: snapshot trạng thái ẩn → kéo danh sách mới → ghi đè toàn bộ → áp lại snapshot.
// limit == 0 bỏ qua hoàn toàn.
func (e *Engine) SyncTrending(ctx context.Context, limit int64, progress *Progress) error {
	log := logger.GetSyncLogger()

	if limit == 0 {
		log.Info("⏭️ [TRENDING] Limit = 0, bỏ qua sync trending")
		return nil
	}

	// Snapshot TRƯỚC khi xóa để trạng thái ẩn sống sót qua lần thay mới
	snapshot, err := e.trending.SnapshotHiddenState(ctx)
	if err != nil {
		return err
	}

	var entries []catalogmodels.TrendingEntry
	pageCap := tmdb.MaxPages
	pageDelay := time.Duration(e.cfg.SyncPageDelayMs) * time.Millisecond

	for page := 1; page <= pageCap; page++ {
		result, err := e.provider.GetTrending(ctx, "day", "", page)
		if err != nil {
			return err
		}
		if page == 1 {
			pageCap = EffectivePageCap(result.TotalPages, limit, tmdb.PageSize)
		}
		if len(result.Results) == 0 {
			break
		}

		for _, src := range result.Results {
			// Trending all trả cả person, chỉ giữ movie và tv
			if src.MediaType != "" && src.MediaType != string(tmdb.KindMovie) && src.MediaType != string(tmdb.KindTV) {
				continue
			}
			entries = append(entries, trendingFromList(len(entries)+1, src))
			if limit > 0 && int64(len(entries)) >= limit {
				break
			}
		}
		if limit > 0 && int64(len(entries)) >= limit {
			break
		}

		if page < pageCap {
			if err := sleepSync(ctx, pageDelay); err != nil {
				return err
			}
		}
	}

	if err := e.trending.ReplaceAll(ctx, entries, snapshot); err != nil {
		return err
	}

	progress.Processed.Add(int64(len(entries)))
	progress.Synced.Add(int64(len(entries)))
	log.WithFields(map[string]interface{}{
		"entries":  len(entries),
		"rehidden": len(snapshot),
	}).Info("✅ [TRENDING] Thay mới danh sách trending hoàn tất")
	return nil
}

// sleepSync chờ hết delay hoặc dừng sớm khi context bị hủy
func sleepSync(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
