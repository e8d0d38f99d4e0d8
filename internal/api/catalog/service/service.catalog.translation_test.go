// Package catalogsvc - Test chuẩn hóa tag ngôn ngữ và thứ tự fallback.
package catalogsvc

import (
	"errors"
	"testing"

	"movie_backend/internal/common"
)

func TestCanonicalizeLanguage(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"viết thường cả tag", "vi-vn", "vi-VN"},
		{"chỉ ngôn ngữ", "vi", "vi"},
		{"có khoảng trắng thừa", "  en-US ", "en-US"},
		{"region viết thường", "ja-jp", "ja-JP"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanonicalizeLanguage(tc.in)
			if err != nil {
				t.Fatalf("CanonicalizeLanguage(%q) lỗi: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("CanonicalizeLanguage(%q) = %q, muốn %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalizeLanguage_InvalidTag(t *testing.T) {
	_, err := CanonicalizeLanguage("!!không-phải-tag!!")
	if err == nil {
		t.Fatal("muốn lỗi với tag không hợp lệ")
	}
	var customErr *common.Error
	if !errors.As(err, &customErr) || customErr.Code.Code != common.ErrCodeValidationFormat.Code {
		t.Errorf("lỗi = %v, muốn mã %s", err, common.ErrCodeValidationFormat.Code)
	}
}

func TestFallbackCandidates(t *testing.T) {
	candidates, err := FallbackCandidates("vi-VN")
	if err != nil {
		t.Fatalf("FallbackCandidates lỗi: %v", err)
	}
	if len(candidates) != 2 || candidates[0] != "vi-VN" || candidates[1] != "vi" {
		t.Errorf("candidates = %v, muốn [vi-VN vi]", candidates)
	}

	// Tag chỉ có ngôn ngữ gốc không sinh candidate trùng
	candidates, err = FallbackCandidates("vi")
	if err != nil {
		t.Fatalf("FallbackCandidates lỗi: %v", err)
	}
	if len(candidates) != 1 || candidates[0] != "vi" {
		t.Errorf("candidates = %v, muốn [vi]", candidates)
	}
}
