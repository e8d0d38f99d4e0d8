package main

import (
	catalogsvc "movie_backend/internal/api/catalog/service"
	"movie_backend/internal/global"
	syncengine "movie_backend/internal/sync"
	"movie_backend/internal/tmdb"

	"github.com/sirupsen/logrus"
)

// InitSyncRunner dựng engine đồng bộ và runner quản lý vòng đời sync job.
// Gọi sau khi registry collection đã sẵn sàng.
func InitSyncRunner() *syncengine.Runner {
	cfg := global.ServerConfig

	movieSvc, err := catalogsvc.NewMovieService()
	if err != nil {
		logrus.Fatalf("Failed to initialize movie service: %v", err)
	}
	tvSvc, err := catalogsvc.NewTVSeriesService()
	if err != nil {
		logrus.Fatalf("Failed to initialize tv series service: %v", err)
	}
	trendingSvc, err := catalogsvc.NewTrendingService()
	if err != nil {
		logrus.Fatalf("Failed to initialize trending service: %v", err)
	}
	translationSvc, err := catalogsvc.NewTranslationService()
	if err != nil {
		logrus.Fatalf("Failed to initialize translation service: %v", err)
	}
	settingsSvc, err := catalogsvc.NewSyncSettingsService()
	if err != nil {
		logrus.Fatalf("Failed to initialize sync settings service: %v", err)
	}
	jobSvc, err := catalogsvc.NewSyncJobService()
	if err != nil {
		logrus.Fatalf("Failed to initialize sync job service: %v", err)
	}

	client := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL)
	exporter := tmdb.NewExportDownloader(cfg.TMDBExportBaseURL)

	engine := syncengine.NewEngine(cfg, client, exporter, movieSvc, tvSvc, trendingSvc, translationSvc, settingsSvc)
	runner := syncengine.NewRunner(engine, jobSvc)

	logrus.Info("Initialized sync engine and runner")
	return runner
}
