// Package models - CatalogItem thuộc domain catalog (movies, tv_series).
// Một document cho mỗi tmdbId trong mỗi collection.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogItem lưu một phim lẻ hoặc phim bộ đã đồng bộ từ TMDB.
// Collection movies và tv_series dùng chung model này.
type CatalogItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TmdbID           int64   `json:"tmdbId" bson:"tmdbId"`
	Title            string  `json:"title" bson:"title"`
	OriginalTitle    string  `json:"originalTitle" bson:"originalTitle"`
	Overview         string  `json:"overview" bson:"overview"`
	PosterPath       string  `json:"posterPath,omitempty" bson:"posterPath,omitempty"`
	BackdropPath     string  `json:"backdropPath,omitempty" bson:"backdropPath,omitempty"`
	ReleaseDate      string  `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"`
	VoteAverage      float64 `json:"voteAverage" bson:"voteAverage"`
	VoteCount        int64   `json:"voteCount" bson:"voteCount"`
	Popularity       float64 `json:"popularity" bson:"popularity"`
	GenreIDs         []int   `json:"genreIds" bson:"genreIds"`
	OriginalLanguage string  `json:"originalLanguage,omitempty" bson:"originalLanguage,omitempty"`
	Adult            bool    `json:"adult" bson:"adult"`

	// UpdatedAt kiêm khóa xếp hạng của cleanup: item chạm gần nhất được giữ lại
	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
