// Package catalogsvc - Service cấu hình đồng bộ (sync_settings, singleton).
package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "movie_backend/internal/api/base/service"
	catalogdto "movie_backend/internal/api/catalog/dto"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// Giá trị mặc định khi document cấu hình chưa tồn tại
const (
	defaultMovieCatalogLimit    int64 = 10000
	defaultTVCatalogLimit       int64 = 10000
	defaultTrendingCatalogLimit int64 = 200
)

// SyncSettingsService xử lý document cấu hình đồng bộ singleton.
type SyncSettingsService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.SyncSettings]
}

// NewSyncSettingsService tạo SyncSettingsService mới.
func NewSyncSettingsService() (*SyncSettingsService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SyncSettings)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.SyncSettings, common.ErrNotFound)
	}
	return &SyncSettingsService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.SyncSettings](coll),
	}, nil
}

// GetOrCreate trả về document cấu hình, tạo với giá trị mặc định nếu chưa có.
// Sync luôn gọi hàm này trước mỗi lần chạy để đọc limit mới nhất.
func (s *SyncSettingsService) GetOrCreate(ctx context.Context) (catalogmodels.SyncSettings, error) {
	settings, err := s.FindOne(ctx, bson.M{"key": catalogmodels.SyncSettingsKey}, nil)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return catalogmodels.SyncSettings{}, err
	}

	defaults := catalogmodels.SyncSettings{
		Key:                  catalogmodels.SyncSettingsKey,
		MovieCatalogLimit:    defaultMovieCatalogLimit,
		TVCatalogLimit:       defaultTVCatalogLimit,
		TrendingCatalogLimit: defaultTrendingCatalogLimit,
	}
	// Upsert theo key để hai lần khởi tạo đồng thời không tạo hai document
	return s.Upsert(ctx, bson.M{"key": catalogmodels.SyncSettingsKey}, defaults)
}

// ApplyUpdate cập nhật các limit được gửi lên, các field không gửi giữ nguyên.
func (s *SyncSettingsService) ApplyUpdate(ctx context.Context, input *catalogdto.SyncSettingsUpdateInput) (catalogmodels.SyncSettings, error) {
	if _, err := s.GetOrCreate(ctx); err != nil {
		return catalogmodels.SyncSettings{}, err
	}

	set := bson.M{"updatedAt": time.Now().UnixMilli()}
	if input.MovieCatalogLimit != nil {
		set["movieCatalogLimit"] = *input.MovieCatalogLimit
	}
	if input.TVCatalogLimit != nil {
		set["tvCatalogLimit"] = *input.TVCatalogLimit
	}
	if input.TrendingCatalogLimit != nil {
		set["trendingCatalogLimit"] = *input.TrendingCatalogLimit
	}

	return s.UpdateOne(ctx, bson.M{"key": catalogmodels.SyncSettingsKey}, bson.M{"$set": set}, nil)
}
