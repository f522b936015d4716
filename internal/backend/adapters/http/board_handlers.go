package http

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memoboard/internal/backend/ports/services"
	"memoboard/pkg/logger"
)

// Константы для логирования.
const (
	LogBoardRequestFailed = "board request failed"
)

// BoardHandler обрабатывает запросы к /api/board.
type BoardHandler struct {
	boards services.BoardService
}

// NewBoardHandler создает новый экземпляр обработчика досок.
func NewBoardHandler(boards services.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// Info отдает сведения о доске голым объектом.
func (h *BoardHandler) Info(ctx fiber.Ctx) error {
	board, err := h.boards.Info(ctx.Context(), ctx.Query("brCd"))
	if err != nil {
		return h.fail(ctx, "BoardHandler.Info", err)
	}
	return ok(ctx, boardWire{
		Code:        board.Code,
		Name:        board.Name,
		Description: board.Description,
		TotalPosts:  board.TotalPosts,
	})
}

// Posts отдает страницу записей. Обслуживает и /posts, и /search.
func (h *BoardHandler) Posts(ctx fiber.Ctx) error {
	page, err := h.boards.Posts(ctx.Context(),
		ctx.Query("brCd"),
		ctx.Query("keyword"),
		fiber.Query[int](ctx, "page", 1),
		fiber.Query[int](ctx, "size", 0),
	)
	if err != nil {
		return h.fail(ctx, "BoardHandler.Posts", err)
	}

	posts := make([]postWire, 0, len(page.Posts))
	for _, p := range page.Posts {
		posts = append(posts, toPostWire(p))
	}
	return ok(ctx, pageEnvelope{
		Success:       true,
		Content:       posts,
		CurrentPage:   page.CurrentPage,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
	})
}

// Detail отдает запись.
func (h *BoardHandler) Detail(ctx fiber.Ctx) error {
	seq, ok := seqParam(ctx)
	if !ok {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidParams)
	}

	post, err := h.boards.Detail(ctx.Context(), seq)
	if err != nil {
		return h.fail(ctx, "BoardHandler.Detail", err)
	}
	return send(ctx, fiber.StatusOK, envelope{Success: true, Content: toPostWire(post)})
}

// Write создает запись.
func (h *BoardHandler) Write(ctx fiber.Ctx) error {
	var req postWriteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	id, err := h.boards.Write(ctx.Context(), req.BoardCode, req.Title, req.Content, req.Author)
	if err != nil {
		return h.fail(ctx, "BoardHandler.Write", err)
	}
	return send(ctx, fiber.StatusOK, envelope{Success: true, ID: &id, Message: MsgWritten})
}

// Update изменяет запись.
func (h *BoardHandler) Update(ctx fiber.Ctx) error {
	seq, ok := seqParam(ctx)
	if !ok {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidParams)
	}

	var req postUpdateRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	if err := h.boards.Update(ctx.Context(), seq, req.Title, req.Content); err != nil {
		return h.fail(ctx, "BoardHandler.Update", err)
	}
	return send(ctx, fiber.StatusOK, envelope{Success: true, ID: &seq, Message: MsgUpdated})
}

// Delete удаляет запись.
func (h *BoardHandler) Delete(ctx fiber.Ctx) error {
	seq, ok := seqParam(ctx)
	if !ok {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidParams)
	}

	if err := h.boards.Delete(ctx.Context(), seq); err != nil {
		return h.fail(ctx, "BoardHandler.Delete", err)
	}
	return send(ctx, fiber.StatusOK, envelope{Success: true, Message: MsgDeleted})
}

func (h *BoardHandler) fail(ctx fiber.Ctx, handler string, err error) error {
	reqCtx := ctx.Context()
	logger.Log(reqCtx).Error(reqCtx, LogBoardRequestFailed, zap.String("handler", handler), zap.Error(err))
	return handleError(ctx, err)
}

func seqParam(ctx fiber.Ctx) (int64, bool) {
	seq, err := strconv.ParseInt(ctx.Params("seq"), 10, 64)
	return seq, err == nil && seq > 0
}

