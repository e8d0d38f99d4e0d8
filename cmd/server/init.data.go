package main

import (
	"context"

	catalogsvc "movie_backend/internal/api/catalog/service"
	"movie_backend/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định: document sync settings singleton.
// Document đã tồn tại thì giữ nguyên giá trị admin đã chỉnh.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	settingsSvc, err := catalogsvc.NewSyncSettingsService()
	if err != nil {
		log.Fatalf("Failed to initialize sync settings service: %v", err)
	}

	settings, err := settingsSvc.GetOrCreate(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize sync settings: %v", err)
	}

	log.WithFields(map[string]interface{}{
		"movieCatalogLimit":    settings.MovieCatalogLimit,
		"tvCatalogLimit":       settings.TVCatalogLimit,
		"trendingCatalogLimit": settings.TrendingCatalogLimit,
	}).Info("✅ [INIT] Sync settings initialized")
}
