// Package models - ContentTranslation thuộc domain catalog (translations).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentTranslation lưu bản dịch title/overview của một item theo một ngôn ngữ.
// Unique theo bộ ba (tmdbId, mediaType, language); language luôn ở dạng chuẩn BCP 47.
type ContentTranslation struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TmdbID    int64  `json:"tmdbId" bson:"tmdbId"`
	MediaType string `json:"mediaType" bson:"mediaType"` // movie hoặc tv
	Language  string `json:"language" bson:"language"`   // Tag chuẩn hóa, ví dụ vi-VN
	Title     string `json:"title" bson:"title"`
	Overview  string `json:"overview" bson:"overview"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
