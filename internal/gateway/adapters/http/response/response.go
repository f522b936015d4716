// Package response формирует JSON ответы gateway.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"memoboard/internal/gateway/domain/entities"
)

// Body - общий формат ответа gateway.
type Body struct {
	Success bool               `json:"success"`
	Content any                `json:"content,omitempty"`
	Source  entities.Source    `json:"source,omitempty"`
	Reason  string             `json:"reason,omitempty"`
	Message string             `json:"message,omitempty"`
	State   entities.ListState `json:"state,omitempty"`
}

// FromResult строит ответ из результата клиента.
func FromResult[T any](r entities.Result[T]) Body {
	return Body{
		Success: true,
		Content: r.Value,
		Source:  r.Source,
		Reason:  r.Reason,
	}
}

// FromList строит ответ для списка и добавляет состояние списка.
func FromList[T any](r entities.Result[[]T]) Body {
	body := FromResult(r)
	body.State = entities.DeriveListState(len(r.Value), r.IsFallback(), r.Reason)
	return body
}

// FromPage строит ответ для страницы записей.
func FromPage[T any](r entities.Result[entities.Page[T]]) Body {
	body := FromResult(r)
	body.State = entities.DeriveListState(len(r.Value.Items), r.IsFallback(), r.Reason)
	return body
}

// Send отправляет ответ с указанным статусом.
func Send(ctx fiber.Ctx, status int, body Body) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// OK отправляет ответ со статусом 200.
func OK(ctx fiber.Ctx, body Body) error {
	return Send(ctx, fiber.StatusOK, body)
}

// BadRequest отправляет 400 с сообщением.
func BadRequest(ctx fiber.Ctx, message string) error {
	return Send(ctx, fiber.StatusBadRequest, Body{Message: message})
}

// Error отправляет ошибку клиента с соответствующим HTTP статусом.
func Error(ctx fiber.Ctx, err error) error {
	return Send(ctx, StatusFor(err), Body{Message: MessageFor(err)})
}

// StatusFor сопоставляет категорию ошибки HTTP статусу.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, entities.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entities.ErrServer):
		return fiber.StatusBadGateway
	case errors.Is(err, entities.ErrTransport):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// MessageFor возвращает сообщение backend или текст ошибки.
func MessageFor(err error) string {
	var apiErr *entities.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
