// Package http содержит HTTP-обработчики dev backend и форматы ответов.
package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"memoboard/internal/backend/domain/entities"
)

// Сообщения ответов.
const (
	MsgSaved          = "saved"
	MsgDeleted        = "deleted"
	MsgWritten        = "written"
	MsgUpdated        = "updated"
	MsgNotFound       = "not found"
	MsgInvalidParams  = "invalid parameters"
	MsgInvalidRequest = "invalid request body"
	MsgInternal       = "internal server error"
)

type memoWire struct {
	FID        int64  `json:"FID"`
	FTitle     string `json:"FTITLE"`
	FContent   string `json:"FCONTENT"`
	FCreatedAt string `json:"FCREATED_AT"`
}

type memoSaveRequest struct {
	FID      *int64 `json:"fid"`
	FTitle   string `json:"ftitle"`
	FContent string `json:"fcontent"`
}

type memoStatsWire struct {
	Total        int        `json:"total"`
	TitledCount  int        `json:"titledCount"`
	ContentCount int        `json:"contentCount"`
	RecentFive   []memoWire `json:"recentFive"`
}

type postWire struct {
	ID        int64  `json:"br_pid"`
	BoardCode string `json:"br_cd"`
	Title     string `json:"br_title"`
	Content   string `json:"br_content"`
	Author    string `json:"br_reg_id"`
	CreatedAt string `json:"br_reg_dt"`
	Hits      int64  `json:"br_hit"`
}

type postWriteRequest struct {
	BoardCode string `json:"br_cd"`
	Title     string `json:"br_title"`
	Content   string `json:"br_content"`
	Author    string `json:"br_reg_id"`
}

type postUpdateRequest struct {
	Title   string `json:"br_title"`
	Content string `json:"br_content"`
}

type boardWire struct {
	Code        string `json:"brCd"`
	Name        string `json:"brNm"`
	Description string `json:"description"`
	TotalPosts  int64  `json:"totalPosts"`
}

type envelope struct {
	Success bool   `json:"success"`
	Content any    `json:"content,omitempty"`
	ID      *int64 `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type pageEnvelope struct {
	Success       bool       `json:"success"`
	Content       []postWire `json:"content"`
	CurrentPage   int        `json:"currentPage"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toMemoWire(m *entities.Memo) memoWire {
	return memoWire{FID: m.ID, FTitle: m.Title, FContent: m.Content, FCreatedAt: formatTime(m.CreatedAt)}
}

func toMemoWires(memos []*entities.Memo) []memoWire {
	out := make([]memoWire, 0, len(memos))
	for _, m := range memos {
		out = append(out, toMemoWire(m))
	}
	return out
}

func toPostWire(p *entities.Post) postWire {
	return postWire{
		ID:        p.ID,
		BoardCode: p.BoardCode,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: formatTime(p.CreatedAt),
		Hits:      p.Hits,
	}
}

func send(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func ok(ctx fiber.Ctx, body any) error {
	return send(ctx, fiber.StatusOK, body)
}

func fail(ctx fiber.Ctx, status int, message string) error {
	return send(ctx, status, envelope{Success: false, Message: message})
}

// handleError сопоставляет доменные ошибки HTTP статусам.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidParams):
		return fail(ctx, fiber.StatusBadRequest, MsgInvalidParams)
	case errors.Is(err, entities.ErrNotFound):
		return fail(ctx, fiber.StatusNotFound, MsgNotFound)
	default:
		return fail(ctx, fiber.StatusInternalServerError, MsgInternal)
	}
}
