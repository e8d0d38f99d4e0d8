// Package catalogsvc - Service trending (trending).
// Danh sách được thay mới toàn bộ mỗi lần sync, trạng thái ẩn do admin đặt được giữ lại.
package catalogsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "movie_backend/internal/api/base/service"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// TrendingService xử lý danh sách trending.
type TrendingService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.TrendingEntry]
}

// NewTrendingService tạo TrendingService mới.
func NewTrendingService() (*TrendingService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Trending)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Trending, common.ErrNotFound)
	}
	return &TrendingService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.TrendingEntry](coll),
	}, nil
}

// hiddenKey tạo khóa snapshot từ cặp định danh của entry
func hiddenKey(tmdbID int64, mediaType string) string {
	return fmt.Sprintf("%d:%s", tmdbID, mediaType)
}

// SnapshotHiddenState đọc trạng thái ẩn của các entry đang bị ẩn, keyed theo
// (tmdbId, mediaType). Gọi TRƯỚC khi xóa danh sách cũ.
func (s *TrendingService) SnapshotHiddenState(ctx context.Context) (map[string]catalogmodels.HiddenState, error) {
	entries, err := s.Find(ctx, bson.M{"isHidden": true}, nil)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]catalogmodels.HiddenState, len(entries))
	for _, e := range entries {
		snapshot[hiddenKey(e.TmdbID, e.MediaType)] = catalogmodels.HiddenState{
			IsHidden:     e.IsHidden,
			HiddenReason: e.HiddenReason,
			HiddenAt:     e.HiddenAt,
		}
	}
	return snapshot, nil
}

// applyHiddenSnapshot áp lại trạng thái ẩn từ snapshot cho những entry có cùng
// (tmdbId, mediaType). Entry không có trong snapshot giữ nguyên.
func applyHiddenSnapshot(entries []catalogmodels.TrendingEntry, snapshot map[string]catalogmodels.HiddenState) {
	for i := range entries {
		if state, ok := snapshot[hiddenKey(entries[i].TmdbID, entries[i].MediaType)]; ok {
			entries[i].IsHidden = state.IsHidden
			entries[i].HiddenReason = state.HiddenReason
			entries[i].HiddenAt = state.HiddenAt
		}
	}
}

// ReplaceAll thay toàn bộ danh sách trending bằng entries mới, áp lại trạng thái ẩn
// từ snapshot cho những entry vẫn còn trong danh sách mới.
func (s *TrendingService) ReplaceAll(ctx context.Context, entries []catalogmodels.TrendingEntry, snapshot map[string]catalogmodels.HiddenState) error {
	if _, err := s.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	applyHiddenSnapshot(entries, snapshot)

	_, err := s.InsertMany(ctx, entries)
	return err
}

// SetHidden đặt hoặc gỡ trạng thái ẩn của một entry theo (tmdbId, mediaType).
func (s *TrendingService) SetHidden(ctx context.Context, tmdbID int64, mediaType string, hidden bool, reason string) (catalogmodels.TrendingEntry, error) {
	now := time.Now().UnixMilli()
	set := bson.M{
		"isHidden":  hidden,
		"updatedAt": now,
	}
	var update bson.M
	if hidden {
		set["hiddenReason"] = reason
		set["hiddenAt"] = now
		update = bson.M{"$set": set}
	} else {
		update = bson.M{
			"$set":   set,
			"$unset": bson.M{"hiddenReason": "", "hiddenAt": ""},
		}
	}
	return s.UpdateOne(ctx, bson.M{"tmdbId": tmdbID, "mediaType": mediaType}, update, nil)
}

// ListVisible trả về danh sách trending chưa bị ẩn, theo thứ tự rank.
func (s *TrendingService) ListVisible(ctx context.Context) ([]catalogmodels.TrendingEntry, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "rank", Value: 1}})
	return s.Find(ctx, bson.M{"isHidden": false}, opts)
}
