// Package tmdb - Test phân loại lỗi và retry policy.
package tmdb

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestClassifyResponse(t *testing.T) {
	cases := []struct {
		name   string
		status int
		err    error
		want   errorClass
	}{
		{"thành công 200", 200, nil, classNone},
		{"rate limit 429", 429, nil, classRateLimit},
		{"server 500", 500, nil, classServer},
		{"server 503", 503, nil, classServer},
		{"request 400", 400, nil, classRequest},
		{"request 404", 404, nil, classRequest},
		{"lỗi mạng", 0, errors.New("connection refused"), classNetwork},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp *http.Response
			if tc.err == nil {
				resp = &http.Response{StatusCode: tc.status}
			}
			got := classifyResponse(resp, tc.err)
			if got != tc.want {
				t.Errorf("classifyResponse(%d, %v) = %v, muốn %v", tc.status, tc.err, got, tc.want)
			}
		})
	}
}

func TestRetryPolicy_RateLimitExponential(t *testing.T) {
	p := DefaultRetryPolicy()

	// Attempt 0 và 1 được retry với delay nhân đôi
	delay0, retry0 := p.NextDelay(classRateLimit, 0, 0)
	if !retry0 || delay0 != 1*time.Second {
		t.Errorf("attempt 0: delay = %v, retry = %v; muốn 1s, true", delay0, retry0)
	}
	delay1, retry1 := p.NextDelay(classRateLimit, 1, 0)
	if !retry1 || delay1 != 2*time.Second {
		t.Errorf("attempt 1: delay = %v, retry = %v; muốn 2s, true", delay1, retry1)
	}

	// Attempt 2 là lần gọi thứ 3, hết quota
	_, retry2 := p.NextDelay(classRateLimit, 2, 0)
	if retry2 {
		t.Error("attempt 2 vẫn được retry, muốn dừng sau 3 lần gọi")
	}
}

func TestRetryPolicy_RateLimitHonorsRetryAfter(t *testing.T) {
	p := DefaultRetryPolicy()

	// Retry-After lớn hơn backoff thì dùng Retry-After
	delay, retry := p.NextDelay(classRateLimit, 0, 5*time.Second)
	if !retry || delay != 5*time.Second {
		t.Errorf("delay = %v, retry = %v; muốn 5s từ Retry-After", delay, retry)
	}

	// Retry-After vượt trần thì bị cắt về MaxDelay
	delay, _ = p.NextDelay(classRateLimit, 0, 10*time.Minute)
	if delay != p.MaxDelay {
		t.Errorf("delay = %v, muốn bị cắt về MaxDelay %v", delay, p.MaxDelay)
	}
}

func TestRetryPolicy_ServerLinear(t *testing.T) {
	p := DefaultRetryPolicy()

	delay0, retry0 := p.NextDelay(classServer, 0, 0)
	if !retry0 || delay0 != 2*time.Second {
		t.Errorf("attempt 0: delay = %v, muốn 2s tuyến tính", delay0)
	}
	delay1, retry1 := p.NextDelay(classServer, 1, 0)
	if !retry1 || delay1 != 4*time.Second {
		t.Errorf("attempt 1: delay = %v, muốn 4s tuyến tính", delay1)
	}
	if _, retry2 := p.NextDelay(classServer, 2, 0); retry2 {
		t.Error("5xx vẫn retry sau khi hết quota")
	}
}

func TestRetryPolicy_NetworkSingleRetry(t *testing.T) {
	p := DefaultRetryPolicy()

	delay, retry := p.NextDelay(classNetwork, 0, 0)
	if !retry || delay != p.NetworkDelay {
		t.Errorf("lỗi mạng lần đầu: delay = %v, retry = %v; muốn %v, true", delay, retry, p.NetworkDelay)
	}
	if _, retry1 := p.NextDelay(classNetwork, 1, 0); retry1 {
		t.Error("lỗi mạng chỉ được retry một lần")
	}
}

func TestRetryPolicy_RequestFailsFast(t *testing.T) {
	p := DefaultRetryPolicy()
	if _, retry := p.NextDelay(classRequest, 0, 0); retry {
		t.Error("4xx không được retry")
	}
}

func TestParseRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "7")
	if got := parseRetryAfter(resp); got != 7*time.Second {
		t.Errorf("parseRetryAfter = %v, muốn 7s", got)
	}

	resp.Header.Set("Retry-After", "không phải số")
	if got := parseRetryAfter(resp); got != 0 {
		t.Errorf("parseRetryAfter với giá trị hỏng = %v, muốn 0", got)
	}

	if got := parseRetryAfter(nil); got != 0 {
		t.Errorf("parseRetryAfter(nil) = %v, muốn 0", got)
	}
}
