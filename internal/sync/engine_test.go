// Package sync - Fake cho các store và provider, dùng chung cho test engine.
package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"sync/atomic"
	"testing"
	"time"

	"movie_backend/config"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/tmdb"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testConfig trả về config với mọi delay bằng 0 để test chạy nhanh
func testConfig() *config.Configuration {
	return &config.Configuration{
		SyncBatchSize:      100,
		SyncExportLookback: 7,
	}
}

// ----- Fake provider -----

type fakeProvider struct {
	popularFn     func(kind tmdb.MediaKind, page int) (*tmdb.ListPage, error)
	trendingFn    func(page int) (*tmdb.ListPage, error)
	detailsFn     func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error)
	translationFn func(kind tmdb.MediaKind, id int64, lang string) (*tmdb.TranslationData, error)

	popularCalls  atomic.Int32
	trendingCalls atomic.Int32
	detailCalls   atomic.Int32
}

func (f *fakeProvider) GetPopular(ctx context.Context, kind tmdb.MediaKind, page int, language string) (*tmdb.ListPage, error) {
	f.popularCalls.Add(1)
	return f.popularFn(kind, page)
}

func (f *fakeProvider) GetTrending(ctx context.Context, window string, language string, page int) (*tmdb.ListPage, error) {
	f.trendingCalls.Add(1)
	return f.trendingFn(page)
}

func (f *fakeProvider) GetDetails(ctx context.Context, kind tmdb.MediaKind, tmdbID int64, language string) (*tmdb.Detail, error) {
	f.detailCalls.Add(1)
	return f.detailsFn(kind, tmdbID)
}

func (f *fakeProvider) GetTranslation(ctx context.Context, kind tmdb.MediaKind, tmdbID int64, language string) (*tmdb.TranslationData, error) {
	if f.translationFn == nil {
		return nil, nil
	}
	return f.translationFn(kind, tmdbID, language)
}

// ----- Fake exporter -----

type fakeExporter struct {
	date    time.Time
	findErr error
	records []tmdb.ExportRecord
	dlErr   error
	dlCalls atomic.Int32
}

func (f *fakeExporter) FindAvailableExportDate(ctx context.Context, kind tmdb.MediaKind, start time.Time, maxDaysBack int) (time.Time, error) {
	return f.date, f.findErr
}

func (f *fakeExporter) ExportURL(kind tmdb.MediaKind, date time.Time) string {
	return fmt.Sprintf("fake://export/%s/%s", kind, date.Format("2006-01-02"))
}

func (f *fakeExporter) DownloadExportIDs(ctx context.Context, exportURL string) ([]tmdb.ExportRecord, error) {
	f.dlCalls.Add(1)
	return f.records, f.dlErr
}

// ----- Fake catalog store -----

type fakeCatalogStore struct {
	mu      stdsync.Mutex
	items   map[int64]catalogmodels.CatalogItem
	failIDs map[int64]bool // id ghi vào sẽ trả lỗi

	upserts   []int64
	inserts   []int64 // chỉ các id thực sự được insert mới
	trimCalls []int64 // limit của từng lần TrimToLimit
	trimErr   error
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		items:   map[int64]catalogmodels.CatalogItem{},
		failIDs: map[int64]bool{},
	}
}

func (f *fakeCatalogStore) UpsertByTmdbID(ctx context.Context, item catalogmodels.CatalogItem) (catalogmodels.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[item.TmdbID] {
		return catalogmodels.CatalogItem{}, fmt.Errorf("lỗi ghi giả lập cho id %d", item.TmdbID)
	}
	f.items[item.TmdbID] = item
	f.upserts = append(f.upserts, item.TmdbID)
	return item, nil
}

func (f *fakeCatalogStore) InsertIfAbsent(ctx context.Context, item catalogmodels.CatalogItem) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[item.TmdbID] {
		return false, fmt.Errorf("lỗi ghi giả lập cho id %d", item.TmdbID)
	}
	if _, exists := f.items[item.TmdbID]; exists {
		return false, nil
	}
	f.items[item.TmdbID] = item
	f.inserts = append(f.inserts, item.TmdbID)
	return true, nil
}

func (f *fakeCatalogStore) TrimToLimit(ctx context.Context, limit int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.trimErr != nil {
		return 0, f.trimErr
	}
	f.trimCalls = append(f.trimCalls, limit)
	return 0, nil
}

// ----- Fake trending store -----

type fakeTrendingStore struct {
	snapshot map[string]catalogmodels.HiddenState

	replaced         []catalogmodels.TrendingEntry
	receivedSnapshot map[string]catalogmodels.HiddenState
	replaceCalls     int
}

func (f *fakeTrendingStore) SnapshotHiddenState(ctx context.Context) (map[string]catalogmodels.HiddenState, error) {
	if f.snapshot == nil {
		return map[string]catalogmodels.HiddenState{}, nil
	}
	return f.snapshot, nil
}

func (f *fakeTrendingStore) ReplaceAll(ctx context.Context, entries []catalogmodels.TrendingEntry, snapshot map[string]catalogmodels.HiddenState) error {
	f.replaced = entries
	f.receivedSnapshot = snapshot
	f.replaceCalls++
	return nil
}

// ----- Fake translation store -----

type fakeTranslationStore struct {
	mu       stdsync.Mutex
	upserted []catalogmodels.ContentTranslation
	err      error
}

func (f *fakeTranslationStore) UpsertTranslation(ctx context.Context, t catalogmodels.ContentTranslation) (catalogmodels.ContentTranslation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return catalogmodels.ContentTranslation{}, f.err
	}
	f.upserted = append(f.upserted, t)
	return t, nil
}

// ----- Fake settings store -----

type fakeSettingsStore struct {
	settings  catalogmodels.SyncSettings
	err       error
	panicking bool
}

func (f *fakeSettingsStore) GetOrCreate(ctx context.Context) (catalogmodels.SyncSettings, error) {
	if f.panicking {
		panic("lỗi giả lập trong settings store")
	}
	return f.settings, f.err
}

// ----- Fake job store -----

type fakeJobStore struct {
	mu       stdsync.Mutex
	statuses []string
	failErr  error

	processed, synced, failed int64
}

func (f *fakeJobStore) CreateQueued(ctx context.Context, target string, params catalogmodels.SyncJobParams) (catalogmodels.SyncJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, catalogmodels.SyncJobStatusQueued)
	return catalogmodels.SyncJob{
		ID:     primitive.NewObjectID(),
		Target: target,
		Params: params,
		Status: catalogmodels.SyncJobStatusQueued,
	}, nil
}

func (f *fakeJobStore) MarkRunning(ctx context.Context, jobID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, catalogmodels.SyncJobStatusRunning)
	return nil
}

func (f *fakeJobStore) UpdateProgress(ctx context.Context, jobID primitive.ObjectID, processed, synced, failed int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed, f.synced, f.failed = processed, synced, failed
	return nil
}

func (f *fakeJobStore) MarkCompleted(ctx context.Context, jobID primitive.ObjectID, processed, synced, failed int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, catalogmodels.SyncJobStatusCompleted)
	f.processed, f.synced, f.failed = processed, synced, failed
	return nil
}

func (f *fakeJobStore) MarkFailed(ctx context.Context, jobID primitive.ObjectID, runErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, catalogmodels.SyncJobStatusFailed)
	f.failErr = runErr
	return nil
}

func (f *fakeJobStore) lastStatus() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statuses) == 0 {
		return ""
	}
	return f.statuses[len(f.statuses)-1]
}

// ----- Lắp engine từ fake -----

type testEnv struct {
	engine       *Engine
	provider     *fakeProvider
	exporter     *fakeExporter
	movies       *fakeCatalogStore
	tv           *fakeCatalogStore
	trending     *fakeTrendingStore
	translations *fakeTranslationStore
	settings     *fakeSettingsStore
}

func newTestEnv(cfg *config.Configuration) *testEnv {
	env := &testEnv{
		provider:     &fakeProvider{},
		exporter:     &fakeExporter{},
		movies:       newFakeCatalogStore(),
		tv:           newFakeCatalogStore(),
		trending:     &fakeTrendingStore{},
		translations: &fakeTranslationStore{},
		settings:     &fakeSettingsStore{},
	}
	env.engine = NewEngine(cfg, env.provider, env.exporter, env.movies, env.tv, env.trending, env.translations, env.settings)
	return env
}

// ----- Test mapping và helper -----

func TestItemFromList_MergesMovieAndTVFields(t *testing.T) {
	movie := tmdb.ListItem{ID: 603, Title: "The Matrix", OriginalTitle: "The Matrix", ReleaseDate: "1999-03-30"}
	tv := tmdb.ListItem{ID: 1399, Name: "Game of Thrones", OriginalName: "Game of Thrones", FirstAirDate: "2011-04-17"}

	if got := itemFromList(movie); got.Title != "The Matrix" || got.ReleaseDate != "1999-03-30" {
		t.Errorf("map movie sai: %+v", got)
	}
	if got := itemFromList(tv); got.Title != "Game of Thrones" || got.ReleaseDate != "2011-04-17" {
		t.Errorf("map tv sai: %+v", got)
	}
}

func TestTrendingFromList_DefaultsMediaType(t *testing.T) {
	entry := trendingFromList(3, tmdb.ListItem{ID: 603, Title: "The Matrix"})
	if entry.MediaType != "movie" {
		t.Errorf("mediaType = %s, muốn mặc định movie", entry.MediaType)
	}
	if entry.Rank != 3 {
		t.Errorf("rank = %d, muốn 3", entry.Rank)
	}
}

func TestLimitFor(t *testing.T) {
	settings := catalogmodels.SyncSettings{MovieCatalogLimit: 100, TVCatalogLimit: 50}
	if got := limitFor(settings, tmdb.KindMovie); got != 100 {
		t.Errorf("limit movie = %d, muốn 100", got)
	}
	if got := limitFor(settings, tmdb.KindTV); got != 50 {
		t.Errorf("limit tv = %d, muốn 50", got)
	}
}

func TestProgress_Counters(t *testing.T) {
	p := NewProgress()
	p.MarkSynced()
	p.MarkSynced()
	p.MarkFailed()

	processed, synced, failed := p.Snapshot()
	if processed != 3 || synced != 2 || failed != 1 {
		t.Errorf("snapshot = (%d, %d, %d), muốn (3, 2, 1)", processed, synced, failed)
	}
}
