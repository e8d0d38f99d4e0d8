// Package sync - Test daily sync từ file export với fake exporter/provider.
package sync

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"movie_backend/internal/tmdb"
)

// exportRecords dựng record export từ danh sách id, adultIDs đánh dấu adult
func exportRecords(ids []int64, adultIDs ...int64) []tmdb.ExportRecord {
	adult := map[int64]bool{}
	for _, id := range adultIDs {
		adult[id] = true
	}
	records := make([]tmdb.ExportRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, tmdb.ExportRecord{ID: id, Adult: adult[id]})
	}
	return records
}

// detailFor trả về Detail tối thiểu cho một id
func detailFor(id int64) *tmdb.Detail {
	return &tmdb.Detail{ID: id, Title: fmt.Sprintf("Item %d", id)}
}

func TestSyncDaily_FiltersAdultMovies(t *testing.T) {
	env := newTestEnv(testConfig())
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = exportRecords([]int64{601, 602, 603}, 602)
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		return detailFor(id), nil
	}

	progress := NewProgress()
	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, DailyOptions{}, progress); err != nil {
		t.Fatalf("SyncDaily lỗi: %v", err)
	}

	upserts := append([]int64{}, env.movies.upserts...)
	sort.Slice(upserts, func(i, j int) bool { return upserts[i] < upserts[j] })
	if len(upserts) != 2 || upserts[0] != 601 || upserts[1] != 603 {
		t.Errorf("upserts = %v, muốn [601 603] (602 là adult)", upserts)
	}
}

func TestSyncDaily_TVKeepsAdultFlagUnfiltered(t *testing.T) {
	// Chỉ export movie mới bị lọc adult; export tv không có cờ này
	env := newTestEnv(testConfig())
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = exportRecords([]int64{1399, 1400}, 1400)
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		return detailFor(id), nil
	}

	if err := env.engine.SyncDaily(context.Background(), tmdb.KindTV, DailyOptions{}, NewProgress()); err != nil {
		t.Fatalf("SyncDaily lỗi: %v", err)
	}
	if len(env.tv.upserts) != 2 {
		t.Errorf("upserts = %v, muốn cả 2 id", env.tv.upserts)
	}
}

func TestSyncDaily_NoExportAvailableIsNotError(t *testing.T) {
	env := newTestEnv(testConfig())
	// date zero = không tìm thấy file export trong khoảng lùi

	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, DailyOptions{}, NewProgress()); err != nil {
		t.Fatalf("thiếu file export không được coi là lỗi, nhận: %v", err)
	}
	if env.exporter.dlCalls.Load() != 0 {
		t.Error("không được download khi không có file export")
	}
	if env.provider.detailCalls.Load() != 0 {
		t.Error("không được gọi API chi tiết khi không có file export")
	}
}

func TestSyncDaily_ExplicitDateSkipsProbe(t *testing.T) {
	env := newTestEnv(testConfig())
	// exporter.date để zero: nếu engine vẫn probe thì sẽ bỏ qua kind và không download
	env.exporter.records = exportRecords([]int64{601})
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		return detailFor(id), nil
	}

	opts := DailyOptions{Date: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)}
	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, opts, NewProgress()); err != nil {
		t.Fatalf("SyncDaily lỗi: %v", err)
	}
	if env.exporter.dlCalls.Load() != 1 {
		t.Errorf("download = %d lần, muốn 1 (dùng ngày chỉ định, không probe)", env.exporter.dlCalls.Load())
	}
}

func TestSyncDaily_StartFromBatchResumes(t *testing.T) {
	env := newTestEnv(testConfig())
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = exportRecords([]int64{1, 2, 3, 4, 5, 6})
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		return detailFor(id), nil
	}

	// 6 id, batch 2 → 3 batch; resume từ batch 2 chỉ còn id 5, 6
	opts := DailyOptions{BatchSize: 2, StartFromBatch: 2}
	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, opts, NewProgress()); err != nil {
		t.Fatalf("SyncDaily lỗi: %v", err)
	}

	upserts := append([]int64{}, env.movies.upserts...)
	sort.Slice(upserts, func(i, j int) bool { return upserts[i] < upserts[j] })
	if len(upserts) != 2 || upserts[0] != 5 || upserts[1] != 6 {
		t.Errorf("upserts = %v, muốn [5 6] khi resume từ batch 2", upserts)
	}
}

func TestSyncDaily_ItemFailureDoesNotAbortBatch(t *testing.T) {
	env := newTestEnv(testConfig())
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = exportRecords([]int64{601, 602, 603})
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		if id == 602 {
			return nil, fmt.Errorf("lỗi API giả lập cho id %d", id)
		}
		return detailFor(id), nil
	}

	progress := NewProgress()
	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, DailyOptions{}, progress); err != nil {
		t.Fatalf("lỗi từng item không được làm fail run: %v", err)
	}

	processed, synced, failed := progress.Snapshot()
	if processed != 3 || synced != 2 || failed != 1 {
		t.Errorf("progress = (%d, %d, %d), muốn (3, 2, 1)", processed, synced, failed)
	}
}

func TestSyncDaily_TranslationsUpserted(t *testing.T) {
	cfg := testConfig()
	cfg.SyncTranslateEnabled = true
	cfg.SyncTranslateLangs = []string{"vi-VN", "ja-JP"}

	env := newTestEnv(cfg)
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = exportRecords([]int64{603})
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		return detailFor(id), nil
	}
	env.provider.translationFn = func(kind tmdb.MediaKind, id int64, lang string) (*tmdb.TranslationData, error) {
		if lang == "vi-VN" {
			return &tmdb.TranslationData{Title: "Ma Trận"}, nil
		}
		return nil, nil // ja-JP không có bản dịch
	}

	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, DailyOptions{}, NewProgress()); err != nil {
		t.Fatalf("SyncDaily lỗi: %v", err)
	}

	if len(env.translations.upserted) != 1 {
		t.Fatalf("số bản dịch = %d, muốn 1 (ngôn ngữ không có bản dịch bị bỏ qua)", len(env.translations.upserted))
	}
	got := env.translations.upserted[0]
	if got.TmdbID != 603 || got.Language != "vi-VN" || got.Title != "Ma Trận" {
		t.Errorf("bản dịch không đúng: %+v", got)
	}
}

func TestSyncDaily_TranslationFailureDoesNotFailItem(t *testing.T) {
	cfg := testConfig()
	cfg.SyncTranslateEnabled = true
	cfg.SyncTranslateLangs = []string{"vi-VN"}

	env := newTestEnv(cfg)
	env.exporter.date = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	env.exporter.records = exportRecords([]int64{603})
	env.provider.detailsFn = func(kind tmdb.MediaKind, id int64) (*tmdb.Detail, error) {
		return detailFor(id), nil
	}
	env.provider.translationFn = func(kind tmdb.MediaKind, id int64, lang string) (*tmdb.TranslationData, error) {
		return nil, fmt.Errorf("lỗi API bản dịch giả lập")
	}

	progress := NewProgress()
	if err := env.engine.SyncDaily(context.Background(), tmdb.KindMovie, DailyOptions{}, progress); err != nil {
		t.Fatalf("SyncDaily lỗi: %v", err)
	}

	_, synced, failed := progress.Snapshot()
	if synced != 1 || failed != 0 {
		t.Errorf("progress = (synced %d, failed %d), bản dịch lỗi không được làm item fail", synced, failed)
	}
}
