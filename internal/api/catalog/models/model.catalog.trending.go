// Package models - TrendingEntry thuộc domain catalog (trending).
// Collection được thay mới toàn bộ mỗi lần sync, riêng trạng thái ẩn được giữ lại.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrendingEntry lưu một item trong danh sách trending hiện tại.
// Unique theo cặp (tmdbId, mediaType).
type TrendingEntry struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TmdbID           int64   `json:"tmdbId" bson:"tmdbId"`
	MediaType        string  `json:"mediaType" bson:"mediaType"` // movie hoặc tv
	Title            string  `json:"title" bson:"title"`
	OriginalTitle    string  `json:"originalTitle" bson:"originalTitle"`
	Overview         string  `json:"overview" bson:"overview"`
	PosterPath       string  `json:"posterPath,omitempty" bson:"posterPath,omitempty"`
	BackdropPath     string  `json:"backdropPath,omitempty" bson:"backdropPath,omitempty"`
	ReleaseDate      string  `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"`
	VoteAverage      float64 `json:"voteAverage" bson:"voteAverage"`
	VoteCount        int64   `json:"voteCount" bson:"voteCount"`
	Popularity       float64 `json:"popularity" bson:"popularity"`
	OriginalLanguage string  `json:"originalLanguage,omitempty" bson:"originalLanguage,omitempty"`
	Rank             int     `json:"rank" bson:"rank"` // Thứ tự trong danh sách trending (1 là cao nhất)

	// Trạng thái ẩn do admin đặt, sống sót qua các lần thay mới danh sách
	IsHidden     bool   `json:"isHidden" bson:"isHidden"`
	HiddenReason string `json:"hiddenReason,omitempty" bson:"hiddenReason,omitempty"`
	HiddenAt     int64  `json:"hiddenAt,omitempty" bson:"hiddenAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// HiddenState là phần trạng thái ẩn của một TrendingEntry, được snapshot
// trước khi xóa danh sách cũ và áp lại sau khi ghi danh sách mới.
type HiddenState struct {
	IsHidden     bool
	HiddenReason string
	HiddenAt     int64
}
