// Package cataloghdl - Handler danh sách, tìm kiếm và chi tiết catalog (movies, tv_series).
package cataloghdl

import (
	"strconv"

	basehdl "movie_backend/internal/api/base/handler"
	catalogdto "movie_backend/internal/api/catalog/dto"
	catalogmodels "movie_backend/internal/api/catalog/models"
	catalogsvc "movie_backend/internal/api/catalog/service"
	"movie_backend/internal/common"

	"github.com/gofiber/fiber/v3"
)

// CatalogItemHandler xử lý các endpoint công khai của một collection catalog.
type CatalogItemHandler struct {
	*basehdl.BaseHandler[catalogmodels.CatalogItem, catalogmodels.CatalogItem, catalogmodels.CatalogItem]
	Service *catalogsvc.CatalogItemService
}

// NewMovieHandler tạo handler cho collection movies.
func NewMovieHandler() (*CatalogItemHandler, error) {
	svc, err := catalogsvc.NewMovieService()
	if err != nil {
		return nil, err
	}
	return newCatalogItemHandler(svc), nil
}

// NewTVSeriesHandler tạo handler cho collection tv_series.
func NewTVSeriesHandler() (*CatalogItemHandler, error) {
	svc, err := catalogsvc.NewTVSeriesService()
	if err != nil {
		return nil, err
	}
	return newCatalogItemHandler(svc), nil
}

func newCatalogItemHandler(svc *catalogsvc.CatalogItemService) *CatalogItemHandler {
	return &CatalogItemHandler{
		BaseHandler: basehdl.NewBaseHandler[catalogmodels.CatalogItem, catalogmodels.CatalogItem, catalogmodels.CatalogItem](svc),
		Service:     svc,
	}
}

// parseListQuery đọc query params của endpoint danh sách.
func parseListQuery(c fiber.Ctx) catalogdto.CatalogListQuery {
	genre, _ := strconv.Atoi(c.Query("genre", "0"))
	year, _ := strconv.Atoi(c.Query("year", "0"))
	return catalogdto.CatalogListQuery{
		Genre:    genre,
		Language: c.Query("language"),
		Year:     year,
		Sort:     c.Query("sort", "popularity"),
	}
}

// HandleList xử lý GET danh sách có lọc và phân trang.
// Query: page, limit, genre, language, year, sort=popularity|recent.
func (h *CatalogItemHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := parseListQuery(c)
		if err := h.ValidateInput(&query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		filter := catalogsvc.ListFilter{
			Genre:    query.Genre,
			Language: query.Language,
			Year:     query.Year,
			Sort:     query.Sort,
		}
		result, err := h.Service.ListFiltered(c.Context(), filter, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleSearch xử lý GET tìm kiếm full-text. Query: q, page, limit.
func (h *CatalogItemHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := catalogdto.CatalogSearchQuery{Query: c.Query("q")}
		if err := h.ValidateInput(&query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		result, err := h.Service.Search(c.Context(), query.Query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetByTmdbID xử lý GET chi tiết theo tmdbId.
func (h *CatalogItemHandler) HandleGetByTmdbID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tmdbID, err := strconv.ParseInt(c.Params("tmdbId"), 10, 64)
		if err != nil || tmdbID <= 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "tmdbId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		item, err := h.Service.FindByTmdbID(c.Context(), tmdbID)
		h.HandleResponse(c, item, err)
		return nil
	})
}
