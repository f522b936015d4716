// Package clients определяет контракты клиентов backend, используемые обработчиками.
package clients

import (
	"context"

	"memoboard/internal/gateway/domain/entities"
)

// MemoClient - операции над заметками с деградированным режимом.
type MemoClient interface {
	// List возвращает все заметки. Ошибки чтения превращаются в данные зеркала или заглушки.
	List(ctx context.Context) entities.Result[[]entities.Memo]

	// Get возвращает заметку. ErrNotFound при отрицательном ответе backend.
	Get(ctx context.Context, id int64) (entities.Result[entities.Memo], error)

	// Save создает (ID == nil) или обновляет заметку.
	Save(ctx context.Context, draft entities.MemoDraft) (entities.Result[entities.SaveResult], error)

	Delete(ctx context.Context, id int64) (entities.Result[entities.Ack], error)

	Search(ctx context.Context, keyword string) entities.Result[[]entities.Memo]

	Stats(ctx context.Context) entities.Result[entities.MemoStats]
}

// BoardClient - операции над записями досок. Записи не имеют локального зеркала.
type BoardClient interface {
	// BoardInfo никогда не возвращает ошибку транспорта, только заглушку.
	BoardInfo(ctx context.Context, code string) entities.Result[entities.BoardInfo]

	// ListPosts возвращает пустую страницу с Reason при ошибке.
	ListPosts(ctx context.Context, code string, page, size int) entities.Result[entities.Page[entities.Post]]

	SearchPosts(ctx context.Context, code, keyword string, page, size int) entities.Result[entities.Page[entities.Post]]

	PostDetail(ctx context.Context, seq int64) (entities.Post, error)

	CreatePost(ctx context.Context, draft entities.PostDraft) (entities.WriteResult, error)

	UpdatePost(ctx context.Context, seq int64, update entities.PostUpdate) (entities.WriteResult, error)

	DeletePost(ctx context.Context, seq int64) (entities.WriteResult, error)
}
