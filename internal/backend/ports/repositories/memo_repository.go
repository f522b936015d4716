// Package repositories определяет интерфейсы хранилищ backend.
package repositories

import (
	"context"

	"memoboard/internal/backend/domain/entities"
)

// MemoRepository определяет методы работы с заметками.
type MemoRepository interface {
	// List возвращает заметки от новых к старым.
	List(ctx context.Context) ([]*entities.Memo, error)
	// Search возвращает заметки, заголовок или текст которых содержит keyword.
	Search(ctx context.Context, keyword string) ([]*entities.Memo, error)
	// GetByID возвращает nil, nil для отсутствующей заметки.
	GetByID(ctx context.Context, id int64) (*entities.Memo, error)
	Create(ctx context.Context, memo *entities.Memo) (int64, error)
	// Update возвращает entities.ErrNotFound, если заметки нет.
	Update(ctx context.Context, memo *entities.Memo) error
	Delete(ctx context.Context, id int64) error
}
