package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"memoboard/pkg/logger"
)

// NewRequestContextMiddleware переносит идентификатор запроса из requestid
// и базовый логгер в контекст запроса. Должен стоять после requestid.New.
func NewRequestContextMiddleware(base *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		if base != nil {
			requestCtx = logger.NewContext(requestCtx, base)
		}
		if rid := requestid.FromContext(ctx); rid != "" {
			requestCtx = logger.NewRequestIDContext(requestCtx, rid)
		}
		ctx.SetContext(requestCtx)

		return ctx.Next()
	}
}
