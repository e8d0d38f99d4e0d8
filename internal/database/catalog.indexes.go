// Package database - Index cho các collection catalog (unique theo tmdbId, text search, compound).
package database

import (
	"context"
	"strings"

	"movie_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCatalogIndexes tạo các index cho các collection catalog.
// Gọi một lần khi khởi động server, sau khi kết nối MongoDB thành công.
func CreateCatalogIndexes(ctx context.Context, db *mongo.Database) error {
	// movies và tv_series dùng chung bộ index: unique tmdbId, text search, sort cho cleanup
	for _, colName := range []string{global.MongoDB_ColNames.Movies, global.MongoDB_ColNames.TVSeries} {
		col := db.Collection(colName)

		// tmdbId unique: mỗi item TMDB chỉ có một document
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "tmdbId", Value: 1}},
			Options: options.Index().SetName("catalog_tmdb_id").SetUnique(true),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}

		// (updatedAt desc, _id desc): thứ tự giữ lại của cleanup và danh sách mới cập nhật
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "updatedAt", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("catalog_updated_at_id"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}

		// popularity desc: danh sách phổ biến
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "popularity", Value: -1}},
			Options: options.Index().SetName("catalog_popularity"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}

		// text index trên title và originalTitle: tìm kiếm
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "originalTitle", Value: "text"},
			},
			Options: options.Index().SetName("catalog_title_text"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	// trending: (tmdbId, mediaType) unique: một item chỉ xuất hiện một lần mỗi media type
	trending := db.Collection(global.MongoDB_ColNames.Trending)
	if _, err := trending.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "tmdbId", Value: 1},
			{Key: "mediaType", Value: 1},
		},
		Options: options.Index().SetName("trending_tmdb_media").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// trending: rank asc: thứ tự hiển thị
	if _, err := trending.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rank", Value: 1}},
		Options: options.Index().SetName("trending_rank"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// translations: (tmdbId, mediaType, language) unique: một bản dịch cho mỗi ngôn ngữ
	translations := db.Collection(global.MongoDB_ColNames.Translations)
	if _, err := translations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "tmdbId", Value: 1},
			{Key: "mediaType", Value: 1},
			{Key: "language", Value: 1},
		},
		Options: options.Index().SetName("translation_tmdb_media_lang").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// sync_jobs: (status, createdAt desc): truy vấn job đang chạy và job gần nhất
	syncJobs := db.Collection(global.MongoDB_ColNames.SyncJobs)
	if _, err := syncJobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("sync_job_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// sync_settings: key unique: singleton document
	syncSettings := db.Collection(global.MongoDB_ColNames.SyncSettings)
	if _, err := syncSettings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetName("sync_settings_key").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
