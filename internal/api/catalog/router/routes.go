// Package router đăng ký các route thuộc domain catalog: danh sách phim,
// tìm kiếm, trending, bản dịch, và các route admin của hệ thống sync.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "movie_backend/internal/api/catalog/handler"
	"movie_backend/internal/api/middleware"
	apirouter "movie_backend/internal/api/router"
	syncengine "movie_backend/internal/sync"
)

// Register trả về hàm đăng ký route catalog, nhận runner từ init để gắn vào sync handler.
func Register(runner *syncengine.Runner) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		movieHandler, err := cataloghdl.NewMovieHandler()
		if err != nil {
			return fmt.Errorf("tạo MovieHandler: %w", err)
		}
		tvHandler, err := cataloghdl.NewTVSeriesHandler()
		if err != nil {
			return fmt.Errorf("tạo TVSeriesHandler: %w", err)
		}
		trendingHandler, err := cataloghdl.NewTrendingHandler()
		if err != nil {
			return fmt.Errorf("tạo TrendingHandler: %w", err)
		}
		translationHandler, err := cataloghdl.NewTranslationHandler()
		if err != nil {
			return fmt.Errorf("tạo TranslationHandler: %w", err)
		}
		syncHandler, err := cataloghdl.NewSyncHandler(runner)
		if err != nil {
			return fmt.Errorf("tạo SyncHandler: %w", err)
		}

		adminMiddleware := []fiber.Handler{middleware.APIKeyMiddleware()}

		// Route tĩnh đăng ký trước route có param để /search không bị nuốt bởi /:tmdbId
		catalogs := []struct {
			prefix  string
			handler *cataloghdl.CatalogItemHandler
		}{
			{"/movies", movieHandler},
			{"/tv", tvHandler},
		}
		for _, entry := range catalogs {
			prefix, h := entry.prefix, entry.handler
			// GET /movies?page=&limit=&genre=&language=&year=&sort=
			apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/", nil, h.HandleList)
			// GET /movies/search?q=
			apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/search", nil, h.HandleSearch)
			// GET /movies/:tmdbId
			apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:tmdbId", nil, h.HandleGetByTmdbID)
		}

		// GET /trending: danh sách trending công khai, entry bị ẩn không trả về
		apirouter.RegisterRouteWithMiddleware(v1, "/trending", "GET", "/", nil, trendingHandler.HandleListTrending)
		// POST /trending/:mediaType/:tmdbId/hide: admin ẩn entry. Body: {reason}
		apirouter.RegisterRouteWithMiddleware(v1, "/trending", "POST", "/:mediaType/:tmdbId/hide", adminMiddleware, trendingHandler.HandleHide)
		// POST /trending/:mediaType/:tmdbId/unhide: admin gỡ ẩn entry
		apirouter.RegisterRouteWithMiddleware(v1, "/trending", "POST", "/:mediaType/:tmdbId/unhide", adminMiddleware, trendingHandler.HandleUnhide)

		// GET /translations/:mediaType/:tmdbId?language=: tra cứu bản dịch có fallback
		apirouter.RegisterRouteWithMiddleware(v1, "/translations", "GET", "/:mediaType/:tmdbId", nil, translationHandler.HandleLookup)

		// POST /sync/trigger: admin trigger sync, trả về jobId ngay
		apirouter.RegisterRouteWithMiddleware(v1, "/sync", "POST", "/trigger", adminMiddleware, syncHandler.HandleTrigger)
		// GET /sync/jobs: các job gần nhất
		apirouter.RegisterRouteWithMiddleware(v1, "/sync", "GET", "/jobs", adminMiddleware, syncHandler.HandleListJobs)
		// GET /sync/jobs/:id: poll trạng thái job
		apirouter.RegisterRouteWithMiddleware(v1, "/sync", "GET", "/jobs/:id", adminMiddleware, syncHandler.HandleJobStatus)
		// GET /sync/settings
		apirouter.RegisterRouteWithMiddleware(v1, "/sync", "GET", "/settings", adminMiddleware, syncHandler.HandleGetSettings)
		// PUT /sync/settings
		apirouter.RegisterRouteWithMiddleware(v1, "/sync", "PUT", "/settings", adminMiddleware, syncHandler.HandleUpdateSettings)

		// Route CRUD admin: tra cứu thô collection với filter/options tự do,
		// phục vụ vận hành và debug. Chỉ đọc, không ghi.
		r.RegisterCRUDRoutes(v1, "/admin/movies", movieHandler, apirouter.ReadOnlyConfig, adminMiddleware, adminMiddleware)
		r.RegisterCRUDRoutes(v1, "/admin/tv", tvHandler, apirouter.ReadOnlyConfig, adminMiddleware, adminMiddleware)
		r.RegisterCRUDRoutes(v1, "/admin/sync-jobs", syncHandler, apirouter.ReadOnlyConfig, adminMiddleware, adminMiddleware)

		return nil
	}
}
