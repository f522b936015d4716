// Package boards содержит HTTP-обработчики досок и записей.
package boards

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memoboard/internal/gateway/adapters/http/response"
	"memoboard/internal/gateway/catalog"
	"memoboard/internal/gateway/domain/entities"
	"memoboard/internal/gateway/ports/clients"
	"memoboard/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCatalog = "handling board catalog request"
	LogHandlerInfo    = "handling board info request"
	LogHandlerPosts   = "handling board posts request"
	LogHandlerDetail  = "handling post detail request"
	LogHandlerWrite   = "handling post write request"
	LogPageClamped    = "requested page beyond last page, refetching"
	LogServedOffline  = "board request served in degraded mode"

	ErrMsgInvalidPostID      = "invalid post id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgRequestFailed      = "board request failed"
)

// Handler обработчик HTTP-запросов для досок.
type Handler struct {
	boards  clients.BoardClient
	catalog *catalog.Catalog
}

// NewHandler создает новый экземпляр обработчика досок.
func NewHandler(boards clients.BoardClient, cat *catalog.Catalog) *Handler {
	return &Handler{boards: boards, catalog: cat}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Catalog возвращает встроенный список досок.
func (h *Handler) Catalog(ctx fiber.Ctx) error {
	logger.Log(ctx.Context()).Debug(ctx.Context(), LogHandlerCatalog)
	return response.OK(ctx, response.Body{Success: true, Content: h.catalog.Boards(), Source: entities.SourceLive})
}

// Info возвращает сведения о доске.
func (h *Handler) Info(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Info"), zap.String("board", ctx.Params("code")))
	log.Debug(reqCtx, LogHandlerInfo)

	r := h.boards.BoardInfo(reqCtx, ctx.Params("code"))
	if r.IsFallback() {
		log.Warn(reqCtx, LogServedOffline, zap.String("reason", r.Reason))
	}
	return response.OK(ctx, response.FromResult(r))
}

// Posts возвращает страницу записей, с поиском при непустом keyword.
// Запрос страницы за последней повторяется для последней страницы.
func (h *Handler) Posts(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	code := ctx.Params("code")
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Posts"), zap.String("board", code))
	log.Debug(reqCtx, LogHandlerPosts)

	page := fiber.Query[int](ctx, "page", entities.DefaultPage)
	size := fiber.Query[int](ctx, "size", entities.DefaultPageSize)
	keyword := ctx.Query("keyword")

	r := h.boards.SearchPosts(reqCtx, code, keyword, page, size)
	if last := r.Value.TotalPages; !r.IsFallback() && last > 0 && page > last {
		log.Debug(reqCtx, LogPageClamped, zap.Int("page", page), zap.Int("last", last))
		r = h.boards.SearchPosts(reqCtx, code, keyword, entities.ClampPage(page, last), size)
	}
	if r.IsFallback() {
		log.Warn(reqCtx, LogServedOffline, zap.String("reason", r.Reason))
	}
	return response.OK(ctx, response.FromPage(r))
}

// Detail возвращает запись.
func (h *Handler) Detail(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Detail"))
	log.Debug(reqCtx, LogHandlerDetail)

	seq, ok := postSeq(ctx)
	if !ok {
		return response.BadRequest(ctx, ErrMsgInvalidPostID)
	}

	post, err := h.boards.PostDetail(reqCtx, seq)
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Int64("seq", seq), zap.Error(err))
		return response.Error(ctx, err)
	}
	return response.OK(ctx, response.Body{Success: true, Content: post, Source: entities.SourceLive})
}

// Create создает запись на доске.
func (h *Handler) Create(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Create"), zap.String("board", ctx.Params("code")))
	log.Debug(reqCtx, LogHandlerWrite)

	var req postRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	wr, err := h.boards.CreatePost(reqCtx, entities.PostDraft{
		BoardCode: ctx.Params("code"),
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
	})
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Error(err))
		return response.Error(ctx, err)
	}
	return sendWrite(ctx, fiber.StatusCreated, wr)
}

// Update изменяет запись.
func (h *Handler) Update(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Update"))
	log.Debug(reqCtx, LogHandlerWrite)

	seq, ok := postSeq(ctx)
	if !ok {
		return response.BadRequest(ctx, ErrMsgInvalidPostID)
	}

	var req postRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	wr, err := h.boards.UpdatePost(reqCtx, seq, entities.PostUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Int64("seq", seq), zap.Error(err))
		return response.Error(ctx, err)
	}
	return sendWrite(ctx, fiber.StatusOK, wr)
}

// Delete удаляет запись.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Delete"))
	log.Debug(reqCtx, LogHandlerWrite)

	seq, ok := postSeq(ctx)
	if !ok {
		return response.BadRequest(ctx, ErrMsgInvalidPostID)
	}

	wr, err := h.boards.DeletePost(reqCtx, seq)
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Int64("seq", seq), zap.Error(err))
		return response.Error(ctx, err)
	}
	return sendWrite(ctx, fiber.StatusOK, wr)
}

func sendWrite(ctx fiber.Ctx, status int, wr entities.WriteResult) error {
	return response.Send(ctx, status, response.Body{
		Success: wr.Success,
		Content: wr,
		Source:  entities.SourceLive,
		Message: wr.Message,
	})
}

func postSeq(ctx fiber.Ctx) (int64, bool) {
	seq, err := strconv.ParseInt(ctx.Params("seq"), 10, 64)
	return seq, err == nil
}
