// Package cataloghdl - Handler danh sách trending và moderation ẩn/hiện.
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

// TrendingHandler xử lý các endpoint trending.
type TrendingHandler struct {
	*basehdl.BaseHandler[catalogmodels.TrendingEntry, catalogmodels.TrendingEntry, catalogmodels.TrendingEntry]
	Service *catalogsvc.TrendingService
}

// NewTrendingHandler tạo TrendingHandler mới.
func NewTrendingHandler() (*TrendingHandler, error) {
	svc, err := catalogsvc.NewTrendingService()
	if err != nil {
		return nil, err
	}
	return &TrendingHandler{
		BaseHandler: basehdl.NewBaseHandler[catalogmodels.TrendingEntry, catalogmodels.TrendingEntry, catalogmodels.TrendingEntry](svc),
		Service:     svc,
	}, nil
}

// HandleListTrending xử lý GET danh sách trending công khai.
// Entry bị admin ẩn không xuất hiện trong kết quả.
func (h *TrendingHandler) HandleListTrending(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		entries, err := h.Service.ListVisible(c.Context())
		h.HandleResponse(c, entries, err)
		return nil
	})
}

// parseTrendingKey đọc cặp định danh (mediaType, tmdbId) từ path params.
func parseTrendingKey(c fiber.Ctx) (int64, string, error) {
	mediaType := c.Params("mediaType")
	if mediaType != "movie" && mediaType != "tv" {
		return 0, "", common.NewError(common.ErrCodeValidationInput, "mediaType phải là movie hoặc tv", common.StatusBadRequest, nil)
	}
	tmdbID, err := strconv.ParseInt(c.Params("tmdbId"), 10, 64)
	if err != nil || tmdbID <= 0 {
		return 0, "", common.NewError(common.ErrCodeValidationFormat, "tmdbId không hợp lệ", common.StatusBadRequest, nil)
	}
	return tmdbID, mediaType, nil
}

// HandleHide xử lý POST ẩn một entry trending (admin). Body: {reason}.
func (h *TrendingHandler) HandleHide(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tmdbID, mediaType, err := parseTrendingKey(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(catalogdto.TrendingHideInput)
		if len(c.Body()) > 0 {
			if err := h.ParseRequestBody(c, input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			if err := h.ValidateInput(input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}

		entry, err := h.Service.SetHidden(c.Context(), tmdbID, mediaType, true, input.Reason)
		h.HandleResponse(c, entry, err)
		return nil
	})
}

// HandleUnhide xử lý POST gỡ ẩn một entry trending (admin).
func (h *TrendingHandler) HandleUnhide(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tmdbID, mediaType, err := parseTrendingKey(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		entry, err := h.Service.SetHidden(c.Context(), tmdbID, mediaType, false, "")
		h.HandleResponse(c, entry, err)
		return nil
	})
}
