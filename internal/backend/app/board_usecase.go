package app

import (
	"context"
	"fmt"
	"strings"

	"memoboard/internal/backend/domain/entities"
	"memoboard/internal/backend/ports/repositories"
	"memoboard/internal/backend/ports/services"
)

// Сообщения об ошибках сценариев досок.
const (
	ErrGetBoard   = "failed to get board"
	ErrListPosts  = "failed to list posts"
	ErrGetPost    = "failed to get post"
	ErrWritePost  = "failed to write post"
	ErrUpdatePost = "failed to update post"
	ErrDeletePost = "failed to delete post"
)

// Параметры страниц записей.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// BoardUseCase представляет собой бизнес-логику работы с досками.
type BoardUseCase struct {
	boardRepo repositories.BoardRepository
}

var _ services.BoardService = (*BoardUseCase)(nil)

// NewBoardUseCase создает новый экземпляр BoardUseCase.
func NewBoardUseCase(boardRepo repositories.BoardRepository) *BoardUseCase {
	return &BoardUseCase{boardRepo: boardRepo}
}

// Info возвращает доску.
func (uc *BoardUseCase) Info(ctx context.Context, code string) (*entities.Board, error) {
	board, err := uc.boardRepo.GetBoard(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetBoard, err)
	}
	if board == nil {
		return nil, entities.ErrNotFound
	}
	return board, nil
}

// Posts возвращает страницу записей. page начинается с 1.
func (uc *BoardUseCase) Posts(ctx context.Context, code, keyword string, page, size int) (entities.PostPage, error) {
	if strings.TrimSpace(code) == "" {
		return entities.PostPage{}, entities.ErrInvalidParams
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)

	posts, total, err := uc.boardRepo.ListPosts(ctx, code, strings.TrimSpace(keyword), size, (page-1)*size)
	if err != nil {
		return entities.PostPage{}, fmt.Errorf("%s: %w", ErrListPosts, err)
	}

	return entities.PostPage{
		Posts:         posts,
		CurrentPage:   page,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
		TotalElements: total,
	}, nil
}

// Detail возвращает запись.
func (uc *BoardUseCase) Detail(ctx context.Context, id int64) (*entities.Post, error) {
	post, err := uc.boardRepo.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetPost, err)
	}
	if post == nil {
		return nil, entities.ErrNotFound
	}
	return post, nil
}

// Write создает запись.
func (uc *BoardUseCase) Write(ctx context.Context, code, title, content, author string) (int64, error) {
	post, err := entities.NewPost(code, title, content, author)
	if err != nil {
		return 0, err
	}
	id, err := uc.boardRepo.CreatePost(ctx, post)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrWritePost, err)
	}
	return id, nil
}

// Update изменяет заголовок и текст записи.
func (uc *BoardUseCase) Update(ctx context.Context, id int64, title, content string) error {
	post := &entities.Post{ID: id, Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if post.Title == "" || post.Content == "" {
		return entities.ErrInvalidParams
	}
	if err := uc.boardRepo.UpdatePost(ctx, post); err != nil {
		return fmt.Errorf("%s: %w", ErrUpdatePost, err)
	}
	return nil
}

// Delete удаляет запись.
func (uc *BoardUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.boardRepo.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrDeletePost, err)
	}
	return nil
}
