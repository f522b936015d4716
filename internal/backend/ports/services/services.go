// Package services определяет сценарии backend, используемые HTTP обработчиками.
package services

import (
	"context"

	"memoboard/internal/backend/domain/entities"
)

// MemoService - операции над заметками.
type MemoService interface {
	List(ctx context.Context) ([]*entities.Memo, error)
	Search(ctx context.Context, keyword string) ([]*entities.Memo, error)
	Stats(ctx context.Context) (entities.MemoStats, error)
	Get(ctx context.Context, id int64) (*entities.Memo, error)
	// Save создает заметку при id == nil, иначе изменяет существующую.
	Save(ctx context.Context, id *int64, title, content string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// BoardService - операции над досками и записями.
type BoardService interface {
	Info(ctx context.Context, code string) (*entities.Board, error)
	Posts(ctx context.Context, code, keyword string, page, size int) (entities.PostPage, error)
	Detail(ctx context.Context, id int64) (*entities.Post, error)
	Write(ctx context.Context, code, title, content, author string) (int64, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}
