// Package memos содержит HTTP-обработчики заметок.
package memos

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memoboard/internal/gateway/adapters/http/response"
	"memoboard/internal/gateway/domain/entities"
	"memoboard/internal/gateway/ports/clients"
	"memoboard/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerList   = "handling list memos request"
	LogHandlerSearch = "handling search memos request"
	LogHandlerStats  = "handling memo stats request"
	LogHandlerGet    = "handling get memo request"
	LogHandlerSave   = "handling save memo request"
	LogHandlerDelete = "handling delete memo request"
	LogServedOffline = "memo request served in degraded mode"

	ErrMsgInvalidMemoID      = "invalid memo id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgRequestFailed      = "memo request failed"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	memos clients.MemoClient
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(memos clients.MemoClient) *Handler {
	return &Handler{memos: memos}
}

type memoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List возвращает все заметки.
func (h *Handler) List(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.List"))
	log.Debug(reqCtx, LogHandlerList)

	r := h.memos.List(reqCtx)
	logDegraded(ctx, log, r.Source, r.Reason)
	return response.OK(ctx, response.FromList(r))
}

// Search фильтрует заметки по ключевому слову.
func (h *Handler) Search(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Search"))
	log.Debug(reqCtx, LogHandlerSearch)

	r := h.memos.Search(reqCtx, ctx.Query("keyword"))
	logDegraded(ctx, log, r.Source, r.Reason)
	return response.OK(ctx, response.FromList(r))
}

// Stats возвращает сводку по заметкам.
func (h *Handler) Stats(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Stats"))
	log.Debug(reqCtx, LogHandlerStats)

	r := h.memos.Stats(reqCtx)
	logDegraded(ctx, log, r.Source, r.Reason)
	return response.OK(ctx, response.FromResult(r))
}

// Get возвращает заметку по ID.
func (h *Handler) Get(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Get"))
	log.Debug(reqCtx, LogHandlerGet)

	id, ok := memoID(ctx)
	if !ok {
		return response.BadRequest(ctx, ErrMsgInvalidMemoID)
	}

	r, err := h.memos.Get(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Int64("memo_id", id), zap.Error(err))
		return response.Error(ctx, err)
	}
	logDegraded(ctx, log, r.Source, r.Reason)
	return response.OK(ctx, response.FromResult(r))
}

// Create создает заметку.
func (h *Handler) Create(ctx fiber.Ctx) error {
	return h.save(ctx, nil)
}

// Update изменяет заметку с ID из пути.
func (h *Handler) Update(ctx fiber.Ctx) error {
	id, ok := memoID(ctx)
	if !ok {
		return response.BadRequest(ctx, ErrMsgInvalidMemoID)
	}
	return h.save(ctx, &id)
}

func (h *Handler) save(ctx fiber.Ctx, id *int64) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Save"))
	log.Debug(reqCtx, LogHandlerSave)

	var req memoRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	r, err := h.memos.Save(reqCtx, entities.MemoDraft{ID: id, Title: req.Title, Content: req.Content})
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Error(err))
		return response.Error(ctx, err)
	}

	status := fiber.StatusOK
	switch {
	case r.IsFallback():
		logDegraded(ctx, log, r.Source, r.Reason)
		status = fiber.StatusAccepted
	case id == nil:
		status = fiber.StatusCreated
	}

	body := response.FromResult(r)
	body.Message = r.Value.Message
	return response.Send(ctx, status, body)
}

// Delete удаляет заметку.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Delete"))
	log.Debug(reqCtx, LogHandlerDelete)

	id, ok := memoID(ctx)
	if !ok {
		return response.BadRequest(ctx, ErrMsgInvalidMemoID)
	}

	r, err := h.memos.Delete(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, ErrMsgRequestFailed, zap.Int64("memo_id", id), zap.Error(err))
		return response.Error(ctx, err)
	}
	logDegraded(ctx, log, r.Source, r.Reason)

	body := response.FromResult(r)
	body.Content = nil
	body.Message = r.Value.Message
	return response.OK(ctx, body)
}

func memoID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	return id, err == nil
}

func logDegraded(ctx fiber.Ctx, log *logger.Logger, source entities.Source, reason string) {
	if source == entities.SourceLive {
		return
	}
	log.Warn(ctx.Context(), LogServedOffline, zap.String("source", string(source)), zap.String("reason", reason))
}
