// Package app реализует бизнес-логику dev backend.
package app

import (
	"context"
	"fmt"

	"memoboard/internal/backend/domain/entities"
	"memoboard/internal/backend/ports/repositories"
	"memoboard/internal/backend/ports/services"
)

// Сообщения об ошибках сценариев заметок.
const (
	ErrListMemos  = "failed to list memos"
	ErrGetMemo    = "failed to get memo"
	ErrSaveMemo   = "failed to save memo"
	ErrDeleteMemo = "failed to delete memo"
)

// MemoUseCase представляет собой бизнес-логику работы с заметками.
type MemoUseCase struct {
	memoRepo repositories.MemoRepository
}

var _ services.MemoService = (*MemoUseCase)(nil)

// NewMemoUseCase создает новый экземпляр MemoUseCase.
func NewMemoUseCase(memoRepo repositories.MemoRepository) *MemoUseCase {
	return &MemoUseCase{memoRepo: memoRepo}
}

// List возвращает все заметки.
func (uc *MemoUseCase) List(ctx context.Context) ([]*entities.Memo, error) {
	memos, err := uc.memoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrListMemos, err)
	}
	return memos, nil
}

// Search возвращает заметки по ключевому слову. Пустое слово равносильно List.
func (uc *MemoUseCase) Search(ctx context.Context, keyword string) ([]*entities.Memo, error) {
	if keyword == "" {
		return uc.List(ctx)
	}
	memos, err := uc.memoRepo.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrListMemos, err)
	}
	return memos, nil
}

// Stats считает сводку по всем заметкам.
func (uc *MemoUseCase) Stats(ctx context.Context) (entities.MemoStats, error) {
	memos, err := uc.List(ctx)
	if err != nil {
		return entities.MemoStats{}, err
	}
	return entities.ComputeMemoStats(memos), nil
}

// Get возвращает заметку по ID.
func (uc *MemoUseCase) Get(ctx context.Context, id int64) (*entities.Memo, error) {
	memo, err := uc.memoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetMemo, err)
	}
	if memo == nil {
		return nil, entities.ErrNotFound
	}
	return memo, nil
}

// Save создает или изменяет заметку.
func (uc *MemoUseCase) Save(ctx context.Context, id *int64, title, content string) (int64, error) {
	memo := entities.NewMemo(title, content)
	if memo.Blank() {
		return 0, entities.ErrInvalidParams
	}

	if id == nil {
		newID, err := uc.memoRepo.Create(ctx, memo)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ErrSaveMemo, err)
		}
		return newID, nil
	}

	memo.ID = *id
	if err := uc.memoRepo.Update(ctx, memo); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrSaveMemo, err)
	}
	return memo.ID, nil
}

// Delete удаляет заметку.
func (uc *MemoUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.memoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteMemo, err)
	}
	return nil
}
