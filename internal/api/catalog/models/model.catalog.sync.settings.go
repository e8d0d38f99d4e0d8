// Package models - SyncSettings thuộc domain catalog (sync_settings).
// Document singleton, key cố định.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncSettingsKey là key của document cấu hình đồng bộ duy nhất
const SyncSettingsKey = "catalog"

// Giá trị đặc biệt của các limit
const (
	LimitSkipSync  int64 = 0  // 0 = bỏ qua sync cho catalog này
	LimitUnlimited int64 = -1 // -1 = không giới hạn, cleanup không xóa gì
)

// SyncSettings lưu cấu hình đồng bộ catalog, admin chỉnh được qua API.
// Được đọc lại từ database trước mỗi lần chạy sync.
type SyncSettings struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Key                  string `json:"key" bson:"key"` // Luôn là SyncSettingsKey
	MovieCatalogLimit    int64  `json:"movieCatalogLimit" bson:"movieCatalogLimit"`
	TVCatalogLimit       int64  `json:"tvCatalogLimit" bson:"tvCatalogLimit"`
	TrendingCatalogLimit int64  `json:"trendingCatalogLimit" bson:"trendingCatalogLimit"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
