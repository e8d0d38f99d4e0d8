package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"movie_backend/internal/common"
	"movie_backend/internal/logger"
)

// Client gọi TMDB API v3. Mọi request đều đi qua doGet với retry policy tập trung.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
}

// NewClient tạo TMDB client với retry policy mặc định
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryPolicy(),
	}
}

// WithRetryPolicy thay retry policy (dùng trong test để rút ngắn delay)
func (c *Client) WithRetryPolicy(p RetryPolicy) *Client {
	c.retry = p
	return c
}

// WithHTTPClient thay http client bên dưới
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// GetPopular lấy một page danh sách popular của movie hoặc tv
func (c *Client) GetPopular(ctx context.Context, kind MediaKind, page int, language string) (*ListPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if language != "" {
		query.Set("language", language)
	}

	body, err := c.doGet(ctx, fmt.Sprintf("/%s/popular", kind), query)
	if err != nil {
		return nil, err
	}

	var result ListPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, common.NewError(common.ErrCodeExternal, fmt.Sprintf("Không parse được response popular của TMDB: %v", err), common.StatusBadGateway, nil)
	}
	return &result, nil
}

// GetDetails lấy chi tiết một item theo tmdbId
func (c *Client) GetDetails(ctx context.Context, kind MediaKind, tmdbID int64, language string) (*Detail, error) {
	query := url.Values{}
	if language != "" {
		query.Set("language", language)
	}

	body, err := c.doGet(ctx, fmt.Sprintf("/%s/%d", kind, tmdbID), query)
	if err != nil {
		return nil, err
	}

	var result Detail
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, common.NewError(common.ErrCodeExternal, fmt.Sprintf("Không parse được response chi tiết của TMDB: %v", err), common.StatusBadGateway, nil)
	}
	return &result, nil
}

// GetTrending lấy một page danh sách trending theo window (day hoặc week)
func (c *Client) GetTrending(ctx context.Context, window string, language string, page int) (*ListPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if language != "" {
		query.Set("language", language)
	}

	body, err := c.doGet(ctx, fmt.Sprintf("/trending/all/%s", window), query)
	if err != nil {
		return nil, err
	}

	var result ListPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, common.NewError(common.ErrCodeExternal, fmt.Sprintf("Không parse được response trending của TMDB: %v", err), common.StatusBadGateway, nil)
	}
	return &result, nil
}

// GetTranslation lấy bản dịch title/overview của một item theo ngôn ngữ.
// language dạng BCP 47 (ví dụ vi-VN); match theo cặp iso_639_1-iso_3166_1,
// không có cặp khớp thì fallback theo iso_639_1. Không tìm thấy → (nil, nil).
func (c *Client) GetTranslation(ctx context.Context, kind MediaKind, tmdbID int64, language string) (*TranslationData, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/%s/%d/translations", kind, tmdbID), url.Values{})
	if err != nil {
		return nil, err
	}

	var result translationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, common.NewError(common.ErrCodeExternal, fmt.Sprintf("Không parse được response bản dịch của TMDB: %v", err), common.StatusBadGateway, nil)
	}

	lang, region := splitLanguageTag(language)
	var baseMatch *TranslationData
	for _, t := range result.Translations {
		if t.ISO6391 != lang {
			continue
		}
		title := t.Data.Title
		if title == "" {
			title = t.Data.Name
		}
		data := &TranslationData{Title: title, Overview: t.Data.Overview}
		if region != "" && t.ISO31661 == region {
			return data, nil
		}
		if baseMatch == nil {
			baseMatch = data
		}
	}
	return baseMatch, nil
}

// splitLanguageTag tách tag BCP 47 thành phần ngôn ngữ và phần region ("vi-VN" → "vi", "VN")
func splitLanguageTag(tag string) (string, string) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == '-' {
			return tag[:i], tag[i+1:]
		}
	}
	return tag, ""
}

// doGet thực hiện GET tới TMDB với retry theo policy.
// Request là GET không body nên clone lại được cho mỗi attempt.
func (c *Client) doGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	log := logger.GetSyncLogger()

	query.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, common.NewError(common.ErrCodeExternalRequest, fmt.Sprintf("Không tạo được request tới TMDB: %v", err), common.StatusInternalServerError, nil)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		class := classifyResponse(resp, err)
		if class == classNone {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return nil, common.NewError(common.ErrCodeExternalNetwork, fmt.Sprintf("Lỗi đọc response từ TMDB: %v", readErr), common.StatusBadGateway, nil)
			}
			return body, nil
		}

		lastErr = c.classError(class, path, resp, err)
		retryAfter := parseRetryAfter(resp)
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		delay, shouldRetry := c.retry.NextDelay(class, attempt, retryAfter)
		if !shouldRetry {
			return nil, lastErr
		}

		log.WithFields(map[string]interface{}{
			"path":    path,
			"class":   class.String(),
			"attempt": attempt + 1,
			"delay":   delay.String(),
		}).Warn("🔁 [TMDB] Gọi TMDB thất bại, chờ retry")

		if err := sleepContext(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// classError map một lần gọi thất bại sang lỗi có mã trong taxonomy chung
func (c *Client) classError(class errorClass, path string, resp *http.Response, err error) error {
	switch class {
	case classRateLimit:
		return common.NewError(common.ErrCodeExternalRateLimit, fmt.Sprintf("TMDB giới hạn tần suất tại %s", path), common.StatusTooManyRequests, nil)
	case classServer:
		return common.NewError(common.ErrCodeExternalServer, fmt.Sprintf("TMDB lỗi server %d tại %s", resp.StatusCode, path), common.StatusBadGateway, nil)
	case classRequest:
		return common.NewError(common.ErrCodeExternalRequest, fmt.Sprintf("TMDB từ chối request %d tại %s", resp.StatusCode, path), resp.StatusCode, nil)
	case classNetwork:
		return common.NewError(common.ErrCodeExternalNetwork, fmt.Sprintf("Lỗi mạng khi gọi TMDB tại %s: %v", path, err), common.StatusBadGateway, nil)
	default:
		return nil
	}
}
