// Package sync chứa engine đồng bộ catalog từ TMDB: popular/trending sync,
// daily full sync từ file export, và cleanup theo limit cấu hình.
package sync

import (
	"context"
	"time"

	"movie_backend/config"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/tmdb"
)

// Provider là phần TMDB API mà engine dùng. Interface để test với fake.
type Provider interface {
	GetPopular(ctx context.Context, kind tmdb.MediaKind, page int, language string) (*tmdb.ListPage, error)
	GetTrending(ctx context.Context, window string, language string, page int) (*tmdb.ListPage, error)
	GetDetails(ctx context.Context, kind tmdb.MediaKind, tmdbID int64, language string) (*tmdb.Detail, error)
	GetTranslation(ctx context.Context, kind tmdb.MediaKind, tmdbID int64, language string) (*tmdb.TranslationData, error)
}

// Exporter tải file export id hàng ngày của TMDB.
type Exporter interface {
	FindAvailableExportDate(ctx context.Context, kind tmdb.MediaKind, start time.Time, maxDaysBack int) (time.Time, error)
	ExportURL(kind tmdb.MediaKind, date time.Time) string
	DownloadExportIDs(ctx context.Context, exportURL string) ([]tmdb.ExportRecord, error)
}

// CatalogStore là phần service catalog item mà engine dùng.
type CatalogStore interface {
	UpsertByTmdbID(ctx context.Context, item catalogmodels.CatalogItem) (catalogmodels.CatalogItem, error)
	InsertIfAbsent(ctx context.Context, item catalogmodels.CatalogItem) (bool, error)
	TrimToLimit(ctx context.Context, limit int64) (int64, error)
}

// TrendingStore là phần service trending mà engine dùng.
type TrendingStore interface {
	SnapshotHiddenState(ctx context.Context) (map[string]catalogmodels.HiddenState, error)
	ReplaceAll(ctx context.Context, entries []catalogmodels.TrendingEntry, snapshot map[string]catalogmodels.HiddenState) error
}

// TranslationStore là phần service bản dịch mà engine dùng.
type TranslationStore interface {
	UpsertTranslation(ctx context.Context, t catalogmodels.ContentTranslation) (catalogmodels.ContentTranslation, error)
}

// SettingsStore đọc cấu hình đồng bộ trước mỗi lần chạy.
type SettingsStore interface {
	GetOrCreate(ctx context.Context) (catalogmodels.SyncSettings, error)
}

// Engine thực hiện các quy trình đồng bộ catalog.
type Engine struct {
	cfg          *config.Configuration
	provider     Provider
	exporter     Exporter
	movies       CatalogStore
	tv           CatalogStore
	trending     TrendingStore
	translations TranslationStore
	settings     SettingsStore
}

// NewEngine tạo engine đồng bộ với đầy đủ phụ thuộc.
func NewEngine(cfg *config.Configuration, provider Provider, exporter Exporter, movies, tv CatalogStore, trending TrendingStore, translations TranslationStore, settings SettingsStore) *Engine {
	return &Engine{
		cfg:          cfg,
		provider:     provider,
		exporter:     exporter,
		movies:       movies,
		tv:           tv,
		trending:     trending,
		translations: translations,
		settings:     settings,
	}
}

// storeFor trả về store tương ứng với kind.
func (e *Engine) storeFor(kind tmdb.MediaKind) CatalogStore {
	if kind == tmdb.KindTV {
		return e.tv
	}
	return e.movies
}

// limitFor trả về limit cấu hình tương ứng với kind.
func limitFor(settings catalogmodels.SyncSettings, kind tmdb.MediaKind) int64 {
	if kind == tmdb.KindTV {
		return settings.TVCatalogLimit
	}
	return settings.MovieCatalogLimit
}

// itemFromList map một item trong response danh sách TMDB sang CatalogItem.
func itemFromList(src tmdb.ListItem) catalogmodels.CatalogItem {
	return catalogmodels.CatalogItem{
		TmdbID:           src.ID,
		Title:            src.DisplayTitle(),
		OriginalTitle:    src.DisplayOriginalTitle(),
		Overview:         src.Overview,
		PosterPath:       src.PosterPath,
		BackdropPath:     src.BackdropPath,
		ReleaseDate:      src.DisplayReleaseDate(),
		VoteAverage:      src.VoteAverage,
		VoteCount:        src.VoteCount,
		Popularity:       src.Popularity,
		GenreIDs:         src.GenreIDs,
		OriginalLanguage: src.OriginalLanguage,
		Adult:            src.Adult,
	}
}

// itemFromDetail map response chi tiết TMDB sang CatalogItem.
func itemFromDetail(src *tmdb.Detail) catalogmodels.CatalogItem {
	return catalogmodels.CatalogItem{
		TmdbID:           src.ID,
		Title:            src.DisplayTitle(),
		OriginalTitle:    src.DisplayOriginalTitle(),
		Overview:         src.Overview,
		PosterPath:       src.PosterPath,
		BackdropPath:     src.BackdropPath,
		ReleaseDate:      src.DisplayReleaseDate(),
		VoteAverage:      src.VoteAverage,
		VoteCount:        src.VoteCount,
		Popularity:       src.Popularity,
		GenreIDs:         src.GenreIDs(),
		OriginalLanguage: src.OriginalLanguage,
		Adult:            src.Adult,
	}
}

// trendingFromList map một item trending TMDB sang TrendingEntry với rank.
func trendingFromList(rank int, src tmdb.ListItem) catalogmodels.TrendingEntry {
	mediaType := src.MediaType
	if mediaType == "" {
		mediaType = string(tmdb.KindMovie)
	}
	return catalogmodels.TrendingEntry{
		TmdbID:           src.ID,
		MediaType:        mediaType,
		Title:            src.DisplayTitle(),
		OriginalTitle:    src.DisplayOriginalTitle(),
		Overview:         src.Overview,
		PosterPath:       src.PosterPath,
		BackdropPath:     src.BackdropPath,
		ReleaseDate:      src.DisplayReleaseDate(),
		VoteAverage:      src.VoteAverage,
		VoteCount:        src.VoteCount,
		Popularity:       src.Popularity,
		OriginalLanguage: src.OriginalLanguage,
		Rank:             rank,
	}
}
