package sync

import (
	"context"

	"movie_backend/internal/logger"
	"movie_backend/internal/tmdb"
)

// CleanupKind trim một collection catalog về limit, giữ lại item chạm gần nhất.
// limit <= 0 (bao gồm -1 = không giới hạn) là no-op.
func (e *Engine) CleanupKind(ctx context.Context, kind tmdb.MediaKind, limit int64) error {
	log := logger.GetSyncLogger()

	deleted, err := e.storeFor(kind).TrimToLimit(ctx, limit)
	if err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{
		"kind":    string(kind),
		"limit":   limit,
		"deleted": deleted,
	}).Info("🧹 [CLEANUP] Trim catalog hoàn tất")
	return nil
}

// CleanupAll đọc limit mới nhất từ sync settings và trim từng catalog.
// Lỗi cleanup của một kind chỉ được log, không làm fail run và không
// ảnh hưởng dữ liệu đã sync.
func (e *Engine) CleanupAll(ctx context.Context) {
	log := logger.GetSyncLogger()

	settings, err := e.settings.GetOrCreate(ctx)
	if err != nil {
		log.WithError(err).Error("🧹 [CLEANUP] Không đọc được sync settings, bỏ qua cleanup")
		return
	}

	for _, kind := range []tmdb.MediaKind{tmdb.KindMovie, tmdb.KindTV} {
		if err := e.CleanupKind(ctx, kind, limitFor(settings, kind)); err != nil {
			log.WithError(err).WithField("kind", string(kind)).Error("🧹 [CLEANUP] Trim catalog thất bại")
		}
	}
}
