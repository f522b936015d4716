package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memoboard/pkg/logger"
)

// Сообщения восстановления после паники.
const (
	LogServerPanic          = "server panic"
	LogPanicResponseFailed  = "failed to send error response after panic"
	ErrMsgInternalServerErr = "internal server error"
)

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				log.Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": ErrMsgInternalServerErr,
				}); err != nil {
					log.Error(requestCtx, LogPanicResponseFailed, zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}
