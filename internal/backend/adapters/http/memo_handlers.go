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
	LogMemoRequestFailed = "memo request failed"
)

// MemoHandler обрабатывает запросы к /api/memos.
type MemoHandler struct {
	memos services.MemoService
}

// NewMemoHandler создает новый экземпляр обработчика заметок.
func NewMemoHandler(memos services.MemoService) *MemoHandler {
	return &MemoHandler{memos: memos}
}

// List отдает заметки голым массивом.
func (h *MemoHandler) List(ctx fiber.Ctx) error {
	memos, err := h.memos.List(ctx.Context())
	if err != nil {
		return h.fail(ctx, "MemoHandler.List", err)
	}
	return ok(ctx, toMemoWires(memos))
}

// Search отдает найденные заметки в конверте.
func (h *MemoHandler) Search(ctx fiber.Ctx) error {
	memos, err := h.memos.Search(ctx.Context(), ctx.Query("keyword"))
	if err != nil {
		return h.fail(ctx, "MemoHandler.Search", err)
	}
	return ok(ctx, envelope{Success: true, Content: toMemoWires(memos)})
}

// Stats отдает сводку по заметкам.
func (h *MemoHandler) Stats(ctx fiber.Ctx) error {
	stats, err := h.memos.Stats(ctx.Context())
	if err != nil {
		return h.fail(ctx, "MemoHandler.Stats", err)
	}
	return ok(ctx, envelope{Success: true, Content: memoStatsWire{
		Total:        stats.Total,
		TitledCount:  stats.TitledCount,
		ContentCount: stats.ContentCount,
		RecentFive:   toMemoWires(stats.Recent),
	}})
}

// Get отдает заметку.
func (h *MemoHandler) Get(ctx fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidParams)
	}

	memo, err := h.memos.Get(ctx.Context(), id)
	if err != nil {
		return h.fail(ctx, "MemoHandler.Get", err)
	}
	return ok(ctx, envelope{Success: true, Content: toMemoWire(memo)})
}

// Save создает или изменяет заметку.
func (h *MemoHandler) Save(ctx fiber.Ctx) error {
	var req memoSaveRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	id, err := h.memos.Save(ctx.Context(), req.FID, req.FTitle, req.FContent)
	if err != nil {
		return h.fail(ctx, "MemoHandler.Save", err)
	}
	return ok(ctx, envelope{Success: true, ID: &id, Message: MsgSaved})
}

// Delete удаляет заметку.
func (h *MemoHandler) Delete(ctx fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidParams)
	}

	if err := h.memos.Delete(ctx.Context(), id); err != nil {
		return h.fail(ctx, "MemoHandler.Delete", err)
	}
	return ok(ctx, envelope{Success: true, Message: MsgDeleted})
}

func (h *MemoHandler) fail(ctx fiber.Ctx, handler string, err error) error {
	reqCtx := ctx.Context()
	logger.Log(reqCtx).Error(reqCtx, LogMemoRequestFailed, zap.String("handler", handler), zap.Error(err))
	return handleError(ctx, err)
}
