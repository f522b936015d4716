// Package postgres содержит реализации репозиториев backend поверх PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoboard/internal/backend/ports/repositories"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

var _ PgxPoolInterface = (*pgxpool.Pool)(nil)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// MemoRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) MemoRepository() repositories.MemoRepository {
	return NewMemoRepository(f.pool)
}

// BoardRepository возвращает репозиторий досок.
func (f *RepositoryFactory) BoardRepository() repositories.BoardRepository {
	return NewBoardRepository(f.pool)
}
