// Package sync - Test vòng đời sync job qua Runner với fake job store.
package sync

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/tmdb"
)

// runJob tạo job queued rồi chạy đồng bộ (không qua goroutine của Trigger)
// để test kiểm tra được trạng thái cuối cùng
func runJob(t *testing.T, env *testEnv, jobs *fakeJobStore, target string, params catalogmodels.SyncJobParams) {
	t.Helper()
	runner := NewRunner(env.engine, jobs)
	job, err := jobs.CreateQueued(context.Background(), target, params)
	if err != nil {
		t.Fatalf("CreateQueued lỗi: %v", err)
	}
	runner.Run(context.Background(), job)
}

func TestRunner_CompletedLifecycle(t *testing.T) {
	env := newTestEnv(testConfig())
	// Mọi limit = 0: popular và trending đều skip, run hoàn tất ngay
	env.settings.settings = catalogmodels.SyncSettings{}

	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetPopular, catalogmodels.SyncJobParams{})

	want := []string{
		catalogmodels.SyncJobStatusQueued,
		catalogmodels.SyncJobStatusRunning,
		catalogmodels.SyncJobStatusCompleted,
	}
	if len(jobs.statuses) != len(want) {
		t.Fatalf("chuỗi trạng thái = %v, muốn %v", jobs.statuses, want)
	}
	for i, status := range want {
		if jobs.statuses[i] != status {
			t.Errorf("trạng thái thứ %d = %s, muốn %s", i, jobs.statuses[i], status)
		}
	}
}

func TestRunner_PopularTargetRunsBothKindsAndTrending(t *testing.T) {
	env := newTestEnv(testConfig())
	env.settings.settings = catalogmodels.SyncSettings{
		MovieCatalogLimit:    20,
		TVCatalogLimit:       20,
		TrendingCatalogLimit: 20,
	}
	env.provider.popularFn = func(kind tmdb.MediaKind, page int) (*tmdb.ListPage, error) {
		return popularPage(1, 1, int64(1000+page)), nil
	}
	env.provider.trendingFn = func(page int) (*tmdb.ListPage, error) {
		return &tmdb.ListPage{Page: 1, TotalPages: 1, Results: []tmdb.ListItem{{ID: 603, MediaType: "movie"}}}, nil
	}

	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetPopular, catalogmodels.SyncJobParams{})

	if jobs.lastStatus() != catalogmodels.SyncJobStatusCompleted {
		t.Fatalf("trạng thái cuối = %s, muốn completed (lỗi: %v)", jobs.lastStatus(), jobs.failErr)
	}
	if len(env.movies.inserts) != 1 || len(env.tv.inserts) != 1 {
		t.Errorf("inserts movie = %d, tv = %d; muốn mỗi kind 1", len(env.movies.inserts), len(env.tv.inserts))
	}
	if env.trending.replaceCalls != 1 {
		t.Errorf("ReplaceAll được gọi %d lần, muốn 1", env.trending.replaceCalls)
	}
	// Target popular không chạy cleanup
	if len(env.movies.trimCalls) != 0 || len(env.tv.trimCalls) != 0 {
		t.Error("target popular không được chạy cleanup")
	}
}

func TestRunner_MoviesTargetRunsCleanupWithConfiguredLimit(t *testing.T) {
	env := newTestEnv(testConfig())
	env.settings.settings = catalogmodels.SyncSettings{MovieCatalogLimit: 5000, TVCatalogLimit: 3000}
	// exporter.date zero: daily sync bỏ qua vì không có file export, cleanup vẫn chạy

	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetMovies, catalogmodels.SyncJobParams{})

	if jobs.lastStatus() != catalogmodels.SyncJobStatusCompleted {
		t.Fatalf("trạng thái cuối = %s, muốn completed (lỗi: %v)", jobs.lastStatus(), jobs.failErr)
	}
	if len(env.movies.trimCalls) != 1 || env.movies.trimCalls[0] != 5000 {
		t.Errorf("trim movie = %v, muốn [5000]", env.movies.trimCalls)
	}
	if len(env.tv.trimCalls) != 0 {
		t.Error("target movies không được trim collection tv")
	}
}

func TestRunner_AllTargetRunsCleanupForBothKinds(t *testing.T) {
	env := newTestEnv(testConfig())
	env.settings.settings = catalogmodels.SyncSettings{MovieCatalogLimit: 100, TVCatalogLimit: 50}
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = nil // export rỗng, daily sync không có gì để làm
	env.provider.popularFn = func(kind tmdb.MediaKind, page int) (*tmdb.ListPage, error) {
		return popularPage(1, 1), nil
	}
	env.provider.trendingFn = func(page int) (*tmdb.ListPage, error) {
		return &tmdb.ListPage{Page: 1, TotalPages: 1}, nil
	}

	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetAll, catalogmodels.SyncJobParams{})

	if jobs.lastStatus() != catalogmodels.SyncJobStatusCompleted {
		t.Fatalf("trạng thái cuối = %s, muốn completed (lỗi: %v)", jobs.lastStatus(), jobs.failErr)
	}
	if len(env.movies.trimCalls) != 1 || env.movies.trimCalls[0] != 100 {
		t.Errorf("trim movie = %v, muốn [100]", env.movies.trimCalls)
	}
	if len(env.tv.trimCalls) != 1 || env.tv.trimCalls[0] != 50 {
		t.Errorf("trim tv = %v, muốn [50]", env.tv.trimCalls)
	}
}

func TestRunner_CleanupFailureDoesNotFailAllRun(t *testing.T) {
	env := newTestEnv(testConfig())
	env.settings.settings = catalogmodels.SyncSettings{MovieCatalogLimit: 100, TVCatalogLimit: 50}
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.movies.trimErr = errors.New("lỗi xóa giả lập")
	env.provider.popularFn = func(kind tmdb.MediaKind, page int) (*tmdb.ListPage, error) {
		return popularPage(1, 1), nil
	}
	env.provider.trendingFn = func(page int) (*tmdb.ListPage, error) {
		return &tmdb.ListPage{Page: 1, TotalPages: 1}, nil
	}

	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetAll, catalogmodels.SyncJobParams{})

	// Cleanup chỉ log lỗi, run vẫn completed
	if jobs.lastStatus() != catalogmodels.SyncJobStatusCompleted {
		t.Errorf("trạng thái cuối = %s, muốn completed dù cleanup lỗi", jobs.lastStatus())
	}
}

func TestRunner_InvalidTargetFails(t *testing.T) {
	env := newTestEnv(testConfig())
	jobs := &fakeJobStore{}
	runJob(t, env, jobs, "không-hợp-lệ", catalogmodels.SyncJobParams{})

	if jobs.lastStatus() != catalogmodels.SyncJobStatusFailed {
		t.Fatalf("trạng thái cuối = %s, muốn failed", jobs.lastStatus())
	}
	var customErr *common.Error
	if !errors.As(jobs.failErr, &customErr) || customErr.Code.Code != common.ErrCodeValidationInput.Code {
		t.Errorf("lỗi = %v, muốn mã %s", jobs.failErr, common.ErrCodeValidationInput.Code)
	}
}

func TestRunner_BadDateParamFails(t *testing.T) {
	env := newTestEnv(testConfig())
	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetMovies, catalogmodels.SyncJobParams{Date: "23-08-2026"})

	if jobs.lastStatus() != catalogmodels.SyncJobStatusFailed {
		t.Errorf("trạng thái cuối = %s, muốn failed với ngày sai định dạng", jobs.lastStatus())
	}
}

func TestRunner_PanicRecoveredIntoJobFailure(t *testing.T) {
	env := newTestEnv(testConfig())
	env.settings.panicking = true

	jobs := &fakeJobStore{}
	runJob(t, env, jobs, catalogmodels.SyncTargetAll, catalogmodels.SyncJobParams{})

	if jobs.lastStatus() != catalogmodels.SyncJobStatusFailed {
		t.Fatalf("trạng thái cuối = %s, muốn failed sau panic", jobs.lastStatus())
	}
	if jobs.failErr == nil || !strings.Contains(jobs.failErr.Error(), "panic") {
		t.Errorf("lỗi = %v, muốn chứa thông tin panic", jobs.failErr)
	}
}

func TestDailyOptionsFromParams(t *testing.T) {
	opts, err := dailyOptionsFromParams(catalogmodels.SyncJobParams{
		Date:           "2026-08-20",
		BatchSize:      50,
		StartFromBatch: 3,
	})
	if err != nil {
		t.Fatalf("dailyOptionsFromParams lỗi: %v", err)
	}
	if opts.Date.Format("2006-01-02") != "2026-08-20" {
		t.Errorf("date = %v, muốn 2026-08-20", opts.Date)
	}
	if opts.BatchSize != 50 || opts.StartFromBatch != 3 {
		t.Errorf("opts = %+v, muốn batchSize 50, startFromBatch 3", opts)
	}

	if _, err := dailyOptionsFromParams(catalogmodels.SyncJobParams{Date: "hỏng"}); err == nil {
		t.Error("muốn lỗi với ngày không parse được")
	}
}
