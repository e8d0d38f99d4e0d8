package global

import (
	"movie_backend/config"
	"movie_backend/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Catalog_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Catalog_CollectionName struct {
	Movies       string // Tên collection cho phim lẻ
	TVSeries     string // Tên collection cho phim bộ
	Trending     string // Tên collection cho danh sách trending
	Translations string // Tên collection cho bản dịch nội dung
	SyncSettings string // Tên collection cho cấu hình đồng bộ
	SyncJobs     string // Tên collection cho các tiến trình đồng bộ
}

// Các biến toàn cục
var Validate *validator.Validate                                                        // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                       // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                                  // Cấu hình của server
var MongoDB_ColNames MongoDB_Catalog_CollectionName = *new(MongoDB_Catalog_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// InitColNames gán tên các collection catalog
func InitColNames() {
	MongoDB_ColNames.Movies = "movies"
	MongoDB_ColNames.TVSeries = "tv_series"
	MongoDB_ColNames.Trending = "trending"
	MongoDB_ColNames.Translations = "translations"
	MongoDB_ColNames.SyncSettings = "sync_settings"
	MongoDB_ColNames.SyncJobs = "sync_jobs"
}

// GetColNames trả về danh sách tên tất cả collection catalog
func GetColNames() []string {
	return []string{
		MongoDB_ColNames.Movies,
		MongoDB_ColNames.TVSeries,
		MongoDB_ColNames.Trending,
		MongoDB_ColNames.Translations,
		MongoDB_ColNames.SyncSettings,
		MongoDB_ColNames.SyncJobs,
	}
}
