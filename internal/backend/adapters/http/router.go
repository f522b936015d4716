package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"memoboard/internal/backend/ports/services"
	"memoboard/pkg/logger"
	"memoboard/pkg/middleware"
)

// SetupRouter настраивает маршруты /api/memos и /api/board.
func SetupRouter(app *fiber.App, memos services.MemoService, boards services.BoardService, log *logger.Logger) {
	memoHandler := NewMemoHandler(memos)
	boardHandler := NewBoardHandler(boards)

	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(requestid.New(requestid.Config{Generator: logger.GenerateRequestID}))
	app.Use(middleware.NewRequestContextMiddleware(log))
	app.Use(middleware.NewLoggerMiddleware())

	memoRoutes := app.Group("/api/memos")
	memoRoutes.Get("/", memoHandler.List)
	memoRoutes.Get("/search", memoHandler.Search)
	memoRoutes.Get("/stats", memoHandler.Stats)
	memoRoutes.Get("/:id", memoHandler.Get)
	memoRoutes.Post("/", memoHandler.Save)
	memoRoutes.Delete("/:id", memoHandler.Delete)

	boardRoutes := app.Group("/api/board")
	boardRoutes.Get("/info", boardHandler.Info)
	boardRoutes.Get("/posts", boardHandler.Posts)
	boardRoutes.Get("/search", boardHandler.Posts)
	boardRoutes.Get("/detail/:seq", boardHandler.Detail)
	boardRoutes.Post("/write", boardHandler.Write)
	boardRoutes.Put("/update/:seq", boardHandler.Update)
	boardRoutes.Delete("/delete/:seq", boardHandler.Delete)

	app.Use(func(ctx fiber.Ctx) error {
		return fail(ctx, fiber.StatusNotFound, MsgNotFound)
	})
}
