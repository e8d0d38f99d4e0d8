package tmdb

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"movie_backend/internal/common"
	"movie_backend/internal/logger"
)

// ExportDownloader tải file export id hàng ngày của TMDB
// (http://files.tmdb.org/p/exports/<kind>_ids_MM_DD_YYYY.json.gz).
// File là NDJSON nén gzip, mỗi dòng một record {id, original_title, popularity, adult}.
type ExportDownloader struct {
	baseURL    string
	httpClient *http.Client
}

// NewExportDownloader tạo downloader với base URL export của TMDB
func NewExportDownloader(baseURL string) *ExportDownloader {
	return &ExportDownloader{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// WithHTTPClient thay http client bên dưới
func (d *ExportDownloader) WithHTTPClient(hc *http.Client) *ExportDownloader {
	d.httpClient = hc
	return d
}

// exportFileName tạo tên file export theo format của TMDB: <prefix>_ids_MM_DD_YYYY.json.gz
func exportFileName(kind MediaKind, date time.Time) string {
	prefix := "movie"
	if kind == KindTV {
		prefix = "tv_series"
	}
	return fmt.Sprintf("%s_ids_%02d_%02d_%d.json.gz", prefix, int(date.Month()), date.Day(), date.Year())
}

// ExportURL trả về URL đầy đủ của file export cho một kind và một ngày
func (d *ExportDownloader) ExportURL(kind MediaKind, date time.Time) string {
	return d.baseURL + "/" + exportFileName(kind, date)
}

// FindAvailableExportDate tìm ngày gần nhất có file export, đi lùi từ start tối đa
// maxDaysBack ngày (TMDB publish file export trễ vài giờ nên ngày hôm nay có thể chưa có).
// Không tìm thấy trong khoảng lùi → trả về zero time, không lỗi.
func (d *ExportDownloader) FindAvailableExportDate(ctx context.Context, kind MediaKind, start time.Time, maxDaysBack int) (time.Time, error) {
	log := logger.GetSyncLogger()

	for i := 0; i <= maxDaysBack; i++ {
		date := start.AddDate(0, 0, -i)
		probeURL := d.ExportURL(kind, date)

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
		if err != nil {
			return time.Time{}, common.NewError(common.ErrCodeExternalRequest, fmt.Sprintf("Không tạo được request probe file export: %v", err), common.StatusInternalServerError, nil)
		}

		resp, err := d.httpClient.Do(req)
		if err != nil {
			// Lỗi mạng khi probe: thử tiếp ngày trước đó thay vì fail cả quá trình tìm
			log.WithError(err).WithField("url", probeURL).Warn("📦 [EXPORT] Probe file export lỗi mạng, thử ngày trước đó")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			log.WithFields(map[string]interface{}{
				"kind": string(kind),
				"date": date.Format("2006-01-02"),
			}).Info("📦 [EXPORT] Tìm thấy file export")
			return date, nil
		}

		if ctx.Err() != nil {
			return time.Time{}, ctx.Err()
		}
	}

	log.WithFields(map[string]interface{}{
		"kind":        string(kind),
		"start":       start.Format("2006-01-02"),
		"maxDaysBack": maxDaysBack,
	}).Warn("📦 [EXPORT] Không tìm thấy file export trong khoảng lùi")
	return time.Time{}, nil
}

// DownloadExportIDs tải và decode file export theo dạng stream, không buffer toàn bộ
// file vào bộ nhớ. Dòng không parse được sẽ bị bỏ qua (file export thỉnh thoảng có dòng hỏng).
// File không tồn tại (404/403) → trả về danh sách rỗng, không lỗi.
func (d *ExportDownloader) DownloadExportIDs(ctx context.Context, exportURL string) ([]ExportRecord, error) {
	log := logger.GetSyncLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalRequest, fmt.Sprintf("Không tạo được request tải file export: %v", err), common.StatusInternalServerError, nil)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalNetwork, fmt.Sprintf("Lỗi mạng khi tải file export: %v", err), common.StatusBadGateway, nil)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		log.WithFields(map[string]interface{}{
			"url":    exportURL,
			"status": resp.StatusCode,
		}).Warn("📦 [EXPORT] File export không khả dụng")
		return []ExportRecord{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, common.NewError(common.ErrCodeExternalServer, fmt.Sprintf("Tải file export thất bại, status %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternal, fmt.Sprintf("File export không phải gzip hợp lệ: %v", err), common.StatusBadGateway, nil)
	}
	defer gz.Close()

	var records []ExportRecord
	skipped := 0

	scanner := bufio.NewScanner(gz)
	// Dòng export có thể dài hơn buffer mặc định 64KB của Scanner
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record ExportRecord
		if err := json.Unmarshal(line, &record); err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.NewError(common.ErrCodeExternal, fmt.Sprintf("Lỗi đọc stream file export: %v", err), common.StatusBadGateway, nil)
	}

	log.WithFields(map[string]interface{}{
		"url":     exportURL,
		"records": len(records),
		"skipped": skipped,
	}).Info("📦 [EXPORT] Tải file export hoàn tất")
	return records, nil
}
