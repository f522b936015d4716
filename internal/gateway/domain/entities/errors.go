package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Категории ошибок клиентского слоя.
var (
	ErrValidation = errors.New("validation failed")
	ErrTransport  = errors.New("transport failure")
	ErrNotFound   = errors.New("not found")
	ErrServer     = errors.New("server error")
)

// APIError описывает неудачный вызов backend.
// Kind - одна из категорий выше, Err - исходная причина, если есть.
type APIError struct {
	Kind    error
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap позволяет errors.Is находить и категорию, и причину.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewValidationError возвращает ошибку локальной проверки.
func NewValidationError(op, message string) *APIError {
	return &APIError{Kind: ErrValidation, Op: op, Message: message}
}

// NewTransportError оборачивает сетевую ошибку.
func NewTransportError(op string, status int, err error) *APIError {
	return &APIError{Kind: ErrTransport, Op: op, Status: status, Err: err}
}

// NewNotFoundError возвращает ошибку отсутствующей записи.
func NewNotFoundError(op, message string) *APIError {
	return &APIError{Kind: ErrNotFound, Op: op, Status: 404, Message: message}
}

// NewServerError возвращает ошибку с сообщением от backend.
func NewServerError(op string, status int, message string) *APIError {
	return &APIError{Kind: ErrServer, Op: op, Status: status, Message: message}
}

// StatusOf возвращает HTTP статус из цепочки ошибок или 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
