// Package dto - Test validate các DTO của domain catalog,
// bao gồm custom validator no_xss và language_tag.
package dto

import (
	"testing"

	"movie_backend/internal/global"

	"github.com/stretchr/testify/assert"
)

func init() {
	global.InitValidator()
}

func TestSyncTriggerInput_Validate(t *testing.T) {
	cases := []struct {
		name  string
		input SyncTriggerInput
		valid bool
	}{
		{"target hợp lệ", SyncTriggerInput{Target: "movies"}, true},
		{"target all với ngày", SyncTriggerInput{Target: "all", Date: "2026-08-20"}, true},
		{"target rỗng", SyncTriggerInput{}, false},
		{"target không hợp lệ", SyncTriggerInput{Target: "series"}, false},
		{"ngày sai định dạng", SyncTriggerInput{Target: "movies", Date: "20-08-2026"}, false},
		{"batchSize vượt trần", SyncTriggerInput{Target: "movies", BatchSize: 5000}, false},
		{"startFromBatch hợp lệ", SyncTriggerInput{Target: "tv", BatchSize: 100, StartFromBatch: 7}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := global.Validate.Struct(tc.input)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCatalogListQuery_Validate(t *testing.T) {
	valid := CatalogListQuery{Page: 1, Limit: 20, Language: "vi-VN", Year: 1999, Sort: "recent"}
	assert.NoError(t, global.Validate.Struct(valid))

	assert.Error(t, global.Validate.Struct(CatalogListQuery{Language: "!!xx!!"}), "language_tag phải chặn tag hỏng")
	assert.Error(t, global.Validate.Struct(CatalogListQuery{Year: 1600}), "năm dưới 1870 phải bị chặn")
	assert.Error(t, global.Validate.Struct(CatalogListQuery{Sort: "rating"}), "sort ngoài danh sách phải bị chặn")
	assert.Error(t, global.Validate.Struct(CatalogListQuery{Limit: 500}), "limit vượt trần phải bị chặn")
}

func TestCatalogSearchQuery_Validate(t *testing.T) {
	assert.NoError(t, global.Validate.Struct(CatalogSearchQuery{Query: "ma trận"}))
	assert.Error(t, global.Validate.Struct(CatalogSearchQuery{}), "thiếu q phải bị chặn")
	assert.Error(t, global.Validate.Struct(CatalogSearchQuery{Query: "<script>alert(1)</script>"}), "no_xss phải chặn script tag")
}

func TestSyncSettingsUpdateInput_Validate(t *testing.T) {
	unlimited := int64(-1)
	skip := int64(0)
	tooLow := int64(-2)

	assert.NoError(t, global.Validate.Struct(SyncSettingsUpdateInput{MovieCatalogLimit: &unlimited, TVCatalogLimit: &skip}))
	assert.NoError(t, global.Validate.Struct(SyncSettingsUpdateInput{}), "không gửi field nào vẫn hợp lệ")
	assert.Error(t, global.Validate.Struct(SyncSettingsUpdateInput{TrendingCatalogLimit: &tooLow}), "limit dưới -1 phải bị chặn")
}

func TestTrendingHideInput_Validate(t *testing.T) {
	assert.NoError(t, global.Validate.Struct(TrendingHideInput{Reason: "bản quyền"}))
	assert.NoError(t, global.Validate.Struct(TrendingHideInput{}), "reason là tùy chọn")
	assert.Error(t, global.Validate.Struct(TrendingHideInput{Reason: "javascript:alert(1)"}), "no_xss phải chặn javascript uri")
}
