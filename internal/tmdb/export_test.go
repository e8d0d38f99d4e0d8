// Package tmdb - Test downloader file export id hàng ngày.
package tmdb

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExportFileName(t *testing.T) {
	date := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	if got := exportFileName(KindMovie, date); got != "movie_ids_08_03_2026.json.gz" {
		t.Errorf("movie export = %s, muốn movie_ids_08_03_2026.json.gz", got)
	}
	if got := exportFileName(KindTV, date); got != "tv_series_ids_08_03_2026.json.gz" {
		t.Errorf("tv export = %s, muốn tv_series_ids_08_03_2026.json.gz", got)
	}
}

func TestFindAvailableExportDate_WalksBack(t *testing.T) {
	// File của 2 ngày gần nhất chưa publish, ngày thứ 3 có
	start := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	available := "movie_ids_08_22_2026.json.gz"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, muốn HEAD khi probe", r.Method)
		}
		if strings.HasSuffix(r.URL.Path, available) {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	d := NewExportDownloader(server.URL)
	date, err := d.FindAvailableExportDate(context.Background(), KindMovie, start, 7)
	if err != nil {
		t.Fatalf("FindAvailableExportDate lỗi: %v", err)
	}
	if date.Format("2006-01-02") != "2026-08-22" {
		t.Errorf("date = %s, muốn 2026-08-22", date.Format("2006-01-02"))
	}
}

func TestFindAvailableExportDate_WindowExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewExportDownloader(server.URL)
	date, err := d.FindAvailableExportDate(context.Background(), KindTV, time.Now(), 3)
	if err != nil {
		t.Fatalf("hết khoảng lùi không được coi là lỗi, nhận: %v", err)
	}
	if !date.IsZero() {
		t.Errorf("date = %v, muốn zero time khi không tìm thấy", date)
	}
}

func TestDownloadExportIDs_DecodesAndSkipsMalformed(t *testing.T) {
	lines := []string{
		`{"id": 603, "original_title": "The Matrix", "popularity": 91.5, "adult": false}`,
		`dòng hỏng không phải json`,
		`{"id": 604, "original_title": "The Matrix Reloaded", "popularity": 60.1, "adult": false}`,
		``,
		`{"id": 605, "original_title": "Adult Movie", "popularity": 1.0, "adult": true}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz := gzip.NewWriter(w)
		defer gz.Close()
		gz.Write([]byte(strings.Join(lines, "\n")))
	}))
	defer server.Close()

	d := NewExportDownloader(server.URL)
	records, err := d.DownloadExportIDs(context.Background(), server.URL+"/movie_ids_08_24_2026.json.gz")
	if err != nil {
		t.Fatalf("DownloadExportIDs lỗi: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("số record = %d, muốn 3 (bỏ dòng hỏng và dòng rỗng)", len(records))
	}
	if records[0].ID != 603 || records[1].ID != 604 || records[2].ID != 605 {
		t.Errorf("id không đúng thứ tự: %+v", records)
	}
	if !records[2].Adult {
		t.Error("record 605 phải giữ cờ adult để caller lọc")
	}
}

func TestDownloadExportIDs_NotFoundReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewExportDownloader(server.URL)
	records, err := d.DownloadExportIDs(context.Background(), server.URL+"/missing.json.gz")
	if err != nil {
		t.Fatalf("404 không được coi là lỗi, nhận: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %+v, muốn rỗng", records)
	}
}
