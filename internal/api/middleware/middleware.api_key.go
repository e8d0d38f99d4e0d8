package middleware

import (
	"crypto/subtle"

	"movie_backend/internal/common"
	"movie_backend/internal/global"

	"github.com/gofiber/fiber/v3"
)

// APIKeyMiddleware bảo vệ các route admin (sync trigger, sync settings, moderation).
// Client gửi key qua header X-API-Key. Server chưa cấu hình ADMIN_API_KEY thì
// toàn bộ route admin bị khóa thay vì mở toang.
func APIKeyMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		configured := ""
		if global.ServerConfig != nil {
			configured = global.ServerConfig.AdminAPIKey
		}
		if configured == "" {
			HandleErrorResponse(c, common.ErrAPIKeyInvalid)
			return nil
		}

		provided := c.Get("X-API-Key")
		if provided == "" {
			HandleErrorResponse(c, common.ErrAPIKeyMissing)
			return nil
		}

		// So sánh constant-time để không lộ độ dài prefix khớp qua timing
		if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
			HandleErrorResponse(c, common.ErrAPIKeyInvalid)
			return nil
		}

		return c.Next()
	}
}
