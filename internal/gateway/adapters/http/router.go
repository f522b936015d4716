// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"memoboard/internal/gateway/adapters/http/boards"
	"memoboard/internal/gateway/adapters/http/memos"
	"memoboard/internal/gateway/adapters/http/response"
	"memoboard/pkg/middleware"
	"memoboard/internal/gateway/catalog"
	"memoboard/internal/gateway/ports/clients"
	"memoboard/pkg/logger"
)

// ErrMsgRouteNotFound - ответ для несуществующих маршрутов.
const ErrMsgRouteNotFound = "route not found"

// Deps - зависимости маршрутизатора.
type Deps struct {
	Memos       clients.MemoClient
	Boards      clients.BoardClient
	Catalog     *catalog.Catalog
	Logger      *logger.Logger
	CORSOrigins []string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	memoHandler := memos.NewHandler(deps.Memos)
	boardHandler := boards.NewHandler(deps.Boards, deps.Catalog)

	// Middleware для всех запросов.
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(requestid.New(requestid.Config{Generator: logger.GenerateRequestID}))
	app.Use(middleware.NewRequestContextMiddleware(deps.Logger))
	app.Use(middleware.NewLoggerMiddleware())
	if len(deps.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	app.Get("/healthz", func(ctx fiber.Ctx) error {
		return response.OK(ctx, response.Body{Success: true, Message: "ok"})
	})

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	memoRoutes := apiV1.Group("/memos")
	memoRoutes.Get("/", memoHandler.List)
	memoRoutes.Get("/search", memoHandler.Search)
	memoRoutes.Get("/stats", memoHandler.Stats)
	memoRoutes.Get("/:id", memoHandler.Get)
	memoRoutes.Post("/", memoHandler.Create)
	memoRoutes.Put("/:id", memoHandler.Update)
	memoRoutes.Delete("/:id", memoHandler.Delete)

	boardRoutes := apiV1.Group("/boards")
	boardRoutes.Get("/", boardHandler.Catalog)
	boardRoutes.Get("/:code", boardHandler.Info)
	boardRoutes.Get("/:code/posts", boardHandler.Posts)
	boardRoutes.Post("/:code/posts", boardHandler.Create)

	postRoutes := apiV1.Group("/posts")
	postRoutes.Get("/:seq", boardHandler.Detail)
	postRoutes.Put("/:seq", boardHandler.Update)
	postRoutes.Delete("/:seq", boardHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return response.Send(ctx, fiber.StatusNotFound, response.Body{Message: ErrMsgRouteNotFound})
	})
}
