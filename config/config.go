package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm cấu hình server, MongoDB, TMDB API và các tham số đồng bộ catalog.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"movie_catalog"` // Tên cơ sở dữ liệu catalog
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	AdminAPIKey           string `env:"ADMIN_API_KEY"`                             // API key cho các route admin (sync trigger, settings)

	// TMDB API Configuration
	TMDBAPIKey        string `env:"TMDB_API_KEY,required"`                                             // API key của TMDB
	TMDBBaseURL       string `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`           // Base URL của TMDB API
	TMDBExportBaseURL string `env:"TMDB_EXPORT_BASE_URL" envDefault:"http://files.tmdb.org/p/exports"` // Base URL của file export hàng ngày

	// Sync Configuration
	SyncCron             string   `env:"SYNC_CRON" envDefault:"0 2 * * *"`                               // Cron expression cho daily sync
	SyncTimezone         string   `env:"SYNC_TIMEZONE" envDefault:"Asia/Ho_Chi_Minh"`                    // Timezone cho scheduler
	SyncBatchSize        int      `env:"SYNC_BATCH_SIZE" envDefault:"100"`                               // Số id mỗi batch trong daily sync
	SyncPageDelayMs      int      `env:"SYNC_PAGE_DELAY_MS" envDefault:"500"`                            // Delay giữa các page khi sync popular/trending
	SyncItemStaggerMs    int      `env:"SYNC_ITEM_STAGGER_MS" envDefault:"50"`                           // Delay so le giữa các item trong một batch
	SyncBatchPauseMs     int      `env:"SYNC_BATCH_PAUSE_MS" envDefault:"2000"`                          // Thời gian nghỉ giữa các batch
	SyncExportLookback   int      `env:"SYNC_EXPORT_LOOKBACK_DAYS" envDefault:"7"`                       // Số ngày lùi tối đa khi tìm file export
	SyncTranslateEnabled bool     `env:"SYNC_TRANSLATE_ENABLED" envDefault:"false"`                      // Bật/tắt đồng bộ bản dịch trong daily sync
	SyncTranslateLangs   []string `env:"SYNC_TRANSLATE_LANGS" envSeparator:"," envDefault:"vi-VN,en-US"` // Danh sách ngôn ngữ bản dịch
	SyncTranslateDelayMs int      `env:"SYNC_TRANSLATE_DELAY_MS" envDefault:"100"`                       // Delay giữa các request bản dịch của một item
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
