// Package cataloghdl - Handler tra cứu bản dịch nội dung.
package cataloghdl

import (
	"strconv"

	basehdl "movie_backend/internal/api/base/handler"
	catalogmodels "movie_backend/internal/api/catalog/models"
	catalogsvc "movie_backend/internal/api/catalog/service"
	"movie_backend/internal/common"

	"github.com/gofiber/fiber/v3"
)

// TranslationHandler xử lý endpoint tra cứu bản dịch.
type TranslationHandler struct {
	*basehdl.BaseHandler[catalogmodels.ContentTranslation, catalogmodels.ContentTranslation, catalogmodels.ContentTranslation]
	Service *catalogsvc.TranslationService
}

// NewTranslationHandler tạo TranslationHandler mới.
func NewTranslationHandler() (*TranslationHandler, error) {
	svc, err := catalogsvc.NewTranslationService()
	if err != nil {
		return nil, err
	}
	return &TranslationHandler{
		BaseHandler: basehdl.NewBaseHandler[catalogmodels.ContentTranslation, catalogmodels.ContentTranslation, catalogmodels.ContentTranslation](svc),
		Service:     svc,
	}, nil
}

// HandleLookup xử lý GET bản dịch của một item. Query: language (bắt buộc).
// Tra cứu có fallback: vi-VN không có thì thử vi.
func (h *TranslationHandler) HandleLookup(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		mediaType := c.Params("mediaType")
		if mediaType != "movie" && mediaType != "tv" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "mediaType phải là movie hoặc tv", common.StatusBadRequest, nil))
			return nil
		}

		tmdbID, err := strconv.ParseInt(c.Params("tmdbId"), 10, 64)
		if err != nil || tmdbID <= 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "tmdbId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		language := c.Query("language")
		if language == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số language", common.StatusBadRequest, nil))
			return nil
		}

		translation, err := h.Service.Lookup(c.Context(), tmdbID, mediaType, language)
		h.HandleResponse(c, translation, err)
		return nil
	})
}
