package repositories

import (
	"context"

	"memoboard/internal/backend/domain/entities"
)

// BoardRepository определяет методы работы с досками и записями.
type BoardRepository interface {
	// GetBoard возвращает nil, nil для неизвестной доски.
	GetBoard(ctx context.Context, code string) (*entities.Board, error)
	// ListPosts возвращает записи доски и их общее число. Пустой keyword не фильтрует.
	ListPosts(ctx context.Context, code, keyword string, limit, offset int) ([]*entities.Post, int64, error)
	// GetPost увеличивает счетчик просмотров. Возвращает nil, nil для отсутствующей записи.
	GetPost(ctx context.Context, id int64) (*entities.Post, error)
	CreatePost(ctx context.Context, post *entities.Post) (int64, error)
	UpdatePost(ctx context.Context, post *entities.Post) error
	DeletePost(ctx context.Context, id int64) error
}
