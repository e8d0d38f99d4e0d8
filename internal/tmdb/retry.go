package tmdb

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// errorClass phân loại lỗi khi gọi TMDB để quyết định chiến lược retry
type errorClass int

const (
	classNone      errorClass = iota // Không lỗi
	classRateLimit                   // 429 - bị giới hạn tần suất
	classServer                      // 5xx - lỗi phía TMDB
	classRequest                     // 4xx khác - request sai, retry vô ích
	classNetwork                     // Không nhận được response (timeout, DNS, connection reset)
)

func (c errorClass) String() string {
	switch c {
	case classRateLimit:
		return "rate_limit"
	case classServer:
		return "server"
	case classRequest:
		return "request"
	case classNetwork:
		return "network"
	default:
		return "none"
	}
}

// classifyResponse phân loại kết quả của một lần gọi HTTP
func classifyResponse(resp *http.Response, err error) errorClass {
	if err != nil {
		return classNetwork
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return classRateLimit
	case resp.StatusCode >= 500:
		return classServer
	case resp.StatusCode >= 400:
		return classRequest
	default:
		return classNone
	}
}

// RetryPolicy tập trung toàn bộ chiến lược retry khi gọi TMDB tại một chỗ:
//   - 429: backoff lũy thừa (base delay nhân đôi mỗi lần, có trần), tôn trọng header Retry-After
//   - 5xx: backoff tuyến tính, cùng giới hạn số lần
//   - Lỗi mạng: retry đúng một lần sau delay cố định
//   - 4xx khác: fail ngay, không retry
type RetryPolicy struct {
	MaxAttempts  int           // Tổng số lần gọi tối đa cho 429/5xx (kể cả lần đầu)
	BaseDelay    time.Duration // Delay cơ sở cho backoff lũy thừa (429)
	MaxDelay     time.Duration // Trần delay cho mọi chiến lược
	ServerDelay  time.Duration // Bước delay tuyến tính cho 5xx
	NetworkDelay time.Duration // Delay cố định cho lần retry duy nhất khi lỗi mạng
}

// DefaultRetryPolicy trả về policy mặc định dùng trong production
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		BaseDelay:    1 * time.Second,
		MaxDelay:     30 * time.Second,
		ServerDelay:  2 * time.Second,
		NetworkDelay: 3 * time.Second,
	}
}

// NextDelay quyết định có retry tiếp hay không sau lần gọi thứ attempt (đánh số từ 0)
// và nếu có thì chờ bao lâu. retryAfter là giá trị đọc từ header Retry-After (0 nếu không có).
func (p RetryPolicy) NextDelay(class errorClass, attempt int, retryAfter time.Duration) (time.Duration, bool) {
	switch class {
	case classRateLimit:
		if attempt >= p.MaxAttempts-1 {
			return 0, false
		}
		delay := p.BaseDelay << uint(attempt)
		if retryAfter > delay {
			delay = retryAfter
		}
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
		return delay, true
	case classServer:
		if attempt >= p.MaxAttempts-1 {
			return 0, false
		}
		delay := p.ServerDelay * time.Duration(attempt+1)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
		return delay, true
	case classNetwork:
		// Lỗi mạng chỉ retry đúng một lần
		if attempt >= 1 {
			return 0, false
		}
		return p.NetworkDelay, true
	default:
		return 0, false
	}
}

// parseRetryAfter đọc header Retry-After (dạng số giây) từ response 429
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// sleepContext chờ hết delay hoặc dừng sớm khi context bị hủy
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
