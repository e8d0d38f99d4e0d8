// Package catalogsvc - Service catalog item (movies, tv_series).
package catalogsvc

import (
	"context"
	"fmt"
	"regexp"

	basemodels "movie_backend/internal/api/base/models"
	basesvc "movie_backend/internal/api/base/service"
	catalogmodels "movie_backend/internal/api/catalog/models"
	"movie_backend/internal/common"
	"movie_backend/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogItemService xử lý CRUD và upsert cho một collection catalog (movies hoặc tv_series).
type CatalogItemService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.CatalogItem]
	collectionName string
}

// newCatalogItemService tạo service gắn với một collection catalog theo tên.
func newCatalogItemService(collectionName string) (*CatalogItemService, error) {
	coll, exist := global.RegistryCollections.Get(collectionName)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", collectionName, common.ErrNotFound)
	}
	return &CatalogItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.CatalogItem](coll),
		collectionName:       collectionName,
	}, nil
}

// NewMovieService tạo service cho collection movies.
func NewMovieService() (*CatalogItemService, error) {
	return newCatalogItemService(global.MongoDB_ColNames.Movies)
}

// NewTVSeriesService tạo service cho collection tv_series.
func NewTVSeriesService() (*CatalogItemService, error) {
	return newCatalogItemService(global.MongoDB_ColNames.TVSeries)
}

// CollectionName trả về tên collection mà service đang gắn vào.
func (s *CatalogItemService) CollectionName() string {
	return s.collectionName
}

// UpsertByTmdbID ghi đè item theo tmdbId (insert nếu chưa có).
// Dùng bởi daily sync: dữ liệu mới nhất luôn thắng, updatedAt được làm mới.
func (s *CatalogItemService) UpsertByTmdbID(ctx context.Context, item catalogmodels.CatalogItem) (catalogmodels.CatalogItem, error) {
	return s.Upsert(ctx, bson.M{"tmdbId": item.TmdbID}, item)
}

// InsertIfAbsent chỉ insert khi tmdbId chưa tồn tại, item có sẵn không bị chạm vào.
// Dùng bởi popular sync: lần ghi đầu tiên thắng. Trả về true nếu item được tạo mới.
func (s *CatalogItemService) InsertIfAbsent(ctx context.Context, item catalogmodels.CatalogItem) (bool, error) {
	return s.UpsertSkipExisting(ctx, bson.M{"tmdbId": item.TmdbID}, item)
}

// FindByTmdbID tìm item theo tmdbId.
func (s *CatalogItemService) FindByTmdbID(ctx context.Context, tmdbID int64) (catalogmodels.CatalogItem, error) {
	return s.FindOne(ctx, bson.M{"tmdbId": tmdbID}, nil)
}

// ListFilter là điều kiện lọc danh sách catalog công khai.
type ListFilter struct {
	Genre    int    // 0 = không lọc
	Language string // Rỗng = không lọc
	Year     int    // 0 = không lọc
	Sort     string // popularity (mặc định) hoặc recent
}

// ListFiltered trả về danh sách có phân trang theo điều kiện lọc.
func (s *CatalogItemService) ListFiltered(ctx context.Context, f ListFilter, page, limit int64) (*basemodels.PaginateResult[catalogmodels.CatalogItem], error) {
	filter := bson.M{}
	if f.Genre > 0 {
		filter["genreIds"] = f.Genre
	}
	if f.Language != "" {
		filter["originalLanguage"] = f.Language
	}
	if f.Year > 0 {
		// releaseDate lưu dạng chuỗi YYYY-MM-DD nên lọc năm bằng prefix
		filter["releaseDate"] = bson.M{"$regex": fmt.Sprintf("^%04d-", f.Year)}
	}

	sort := bson.D{{Key: "popularity", Value: -1}}
	if f.Sort == "recent" {
		sort = bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}
	}

	opts := mongoopts.Find().SetSort(sort)
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Search tìm kiếm full-text trên title và originalTitle.
// Text index không match được chuỗi con giữa từ, nên khi không có kết quả
// sẽ fallback sang regex (không phân biệt hoa thường, escape ký tự đặc biệt).
func (s *CatalogItemService) Search(ctx context.Context, query string, page, limit int64) (*basemodels.PaginateResult[catalogmodels.CatalogItem], error) {
	textFilter := bson.M{"$text": bson.M{"$search": query}}
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})

	result, err := s.FindWithPagination(ctx, textFilter, page, limit, opts)
	if err == nil && result.ItemCount > 0 {
		return result, nil
	}

	// Fallback regex khi text search không có kết quả (hoặc lỗi index)
	pattern := regexp.QuoteMeta(query)
	regexFilter := bson.M{"$or": []bson.M{
		{"title": bson.M{"$regex": pattern, "$options": "i"}},
		{"originalTitle": bson.M{"$regex": pattern, "$options": "i"}},
	}}
	regexOpts := mongoopts.Find().SetSort(bson.D{{Key: "popularity", Value: -1}})
	return s.FindWithPagination(ctx, regexFilter, page, limit, regexOpts)
}

// TrimToLimit xóa các item vượt quá limit, giữ lại những item chạm gần nhất.
// Xếp hạng theo (updatedAt desc, _id desc); limit <= 0 là no-op.
// Trả về số document đã xóa.
func (s *CatalogItemService) TrimToLimit(ctx context.Context, limit int64) (int64, error) {
	if limit <= 0 {
		return 0, nil
	}

	// Lấy _id của các document xếp sau vị trí limit theo thứ tự giữ lại
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(limit).
		SetProjection(bson.M{"_id": 1})

	cursor, err := s.Collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var overflow []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cursor.All(ctx, &overflow); err != nil {
		return 0, common.ConvertMongoError(err)
	}
	if len(overflow) == 0 {
		return 0, nil
	}

	ids := make([]interface{}, 0, len(overflow))
	for _, doc := range overflow {
		ids = append(ids, doc.ID)
	}
	return s.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}
