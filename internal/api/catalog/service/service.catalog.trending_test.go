// Package catalogsvc - Test áp lại trạng thái ẩn khi thay mới danh sách trending.
package catalogsvc

import (
	"testing"

	catalogmodels "movie_backend/internal/api/catalog/models"
)

func TestHiddenKey(t *testing.T) {
	if got := hiddenKey(603, "movie"); got != "603:movie" {
		t.Errorf("hiddenKey = %s, muốn 603:movie", got)
	}
}

func TestApplyHiddenSnapshot_RestoresMatchingEntries(t *testing.T) {
	snapshot := map[string]catalogmodels.HiddenState{
		"603:movie": {IsHidden: true, HiddenReason: "bản quyền", HiddenAt: 1700000000},
	}
	entries := []catalogmodels.TrendingEntry{
		{TmdbID: 603, MediaType: "movie", Rank: 1},
		{TmdbID: 1399, MediaType: "tv", Rank: 2},
	}

	applyHiddenSnapshot(entries, snapshot)

	hidden := entries[0]
	if !hidden.IsHidden || hidden.HiddenReason != "bản quyền" || hidden.HiddenAt != 1700000000 {
		t.Errorf("trạng thái ẩn không được áp lại đầy đủ: %+v", hidden)
	}
	untouched := entries[1]
	if untouched.IsHidden || untouched.HiddenReason != "" || untouched.HiddenAt != 0 {
		t.Errorf("entry không có trong snapshot bị sửa: %+v", untouched)
	}
}

func TestApplyHiddenSnapshot_MediaTypeDistinguishesEntries(t *testing.T) {
	// Cùng tmdbId nhưng khác mediaType là hai entry khác nhau
	snapshot := map[string]catalogmodels.HiddenState{
		"100:movie": {IsHidden: true, HiddenReason: "trùng lặp", HiddenAt: 1700000000},
	}
	entries := []catalogmodels.TrendingEntry{
		{TmdbID: 100, MediaType: "tv", Rank: 1},
		{TmdbID: 100, MediaType: "movie", Rank: 2},
	}

	applyHiddenSnapshot(entries, snapshot)

	if entries[0].IsHidden {
		t.Error("entry tv không được nhận trạng thái ẩn của entry movie cùng tmdbId")
	}
	if !entries[1].IsHidden {
		t.Error("entry movie trùng khóa phải được ẩn lại")
	}
}

func TestApplyHiddenSnapshot_EmptySnapshotNoChange(t *testing.T) {
	entries := []catalogmodels.TrendingEntry{
		{TmdbID: 603, MediaType: "movie", Rank: 1},
	}

	applyHiddenSnapshot(entries, map[string]catalogmodels.HiddenState{})

	if entries[0].IsHidden || entries[0].HiddenReason != "" {
		t.Errorf("snapshot rỗng không được sửa entry nào: %+v", entries[0])
	}
}
