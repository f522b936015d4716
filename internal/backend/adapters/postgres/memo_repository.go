package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"memoboard/internal/backend/domain/entities"
	"memoboard/internal/backend/ports/repositories"
	"memoboard/pkg/logger"
)

// Сообщения об ошибках репозитория заметок.
const (
	ErrListMemos   = "failed to list memos"
	ErrSearchMemos = "failed to search memos"
	ErrGetMemo     = "failed to get memo"
	ErrCreateMemo  = "failed to create memo"
	ErrUpdateMemo  = "failed to update memo"
	ErrDeleteMemo  = "failed to delete memo"
	ErrScanMemo    = "failed to scan memo"
)

const (
	memoColumns     = `SELECT fid, ftitle, fcontent, fcreated_at FROM memos`
	queryListMemos  = memoColumns + ` ORDER BY fid DESC`
	querySearchMemo = memoColumns + ` WHERE ftitle ILIKE '%' || $1 || '%' OR fcontent ILIKE '%' || $1 || '%' ORDER BY fid DESC`
	queryGetMemo    = memoColumns + ` WHERE fid = $1`
	queryCreateMemo = `INSERT INTO memos (ftitle, fcontent, fcreated_at) VALUES ($1, $2, $3) RETURNING fid`
	queryUpdateMemo = `UPDATE memos SET ftitle = $1, fcontent = $2 WHERE fid = $3`
	queryDeleteMemo = `DELETE FROM memos WHERE fid = $1`
)

// MemoRepository реализует repositories.MemoRepository.
type MemoRepository struct {
	pool PgxPoolInterface
}

// NewMemoRepository создает новый репозиторий заметок.
func NewMemoRepository(pool PgxPoolInterface) repositories.MemoRepository {
	return &MemoRepository{pool: pool}
}

// List возвращает все заметки.
func (r *MemoRepository) List(ctx context.Context) ([]*entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.List"))

	rows, err := r.pool.Query(ctx, queryListMemos)
	if err != nil {
		log.Error(ctx, ErrListMemos, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListMemos, err)
	}
	return scanMemos(rows)
}

// Search возвращает заметки, содержащие keyword.
func (r *MemoRepository) Search(ctx context.Context, keyword string) ([]*entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Search"))
	log.Debug(ctx, "searching memos", zap.String("keyword", keyword))

	rows, err := r.pool.Query(ctx, querySearchMemo, keyword)
	if err != nil {
		log.Error(ctx, ErrSearchMemos, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrSearchMemos, err)
	}
	return scanMemos(rows)
}

// GetByID получает заметку по ID.
func (r *MemoRepository) GetByID(ctx context.Context, id int64) (*entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.GetByID"))

	var m entities.Memo
	err := r.pool.QueryRow(ctx, queryGetMemo, id).Scan(&m.ID, &m.Title, &m.Content, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "memo not found", zap.Int64("fid", id))
			return nil, nil
		}
		log.Error(ctx, ErrGetMemo, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetMemo, err)
	}
	return &m, nil
}

// Create сохраняет новую заметку.
func (r *MemoRepository) Create(ctx context.Context, memo *entities.Memo) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Create"))

	var id int64
	if err := r.pool.QueryRow(ctx, queryCreateMemo, memo.Title, memo.Content, memo.CreatedAt).Scan(&id); err != nil {
		log.Error(ctx, ErrCreateMemo, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreateMemo, err)
	}

	log.Debug(ctx, "memo created", zap.Int64("fid", id))
	return id, nil
}

// Update изменяет заголовок и текст заметки.
func (r *MemoRepository) Update(ctx context.Context, memo *entities.Memo) error {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Update"))

	tag, err := r.pool.Exec(ctx, queryUpdateMemo, memo.Title, memo.Content, memo.ID)
	if err != nil {
		log.Error(ctx, ErrUpdateMemo, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateMemo, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Delete удаляет заметку.
func (r *MemoRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Delete"))

	tag, err := r.pool.Exec(ctx, queryDeleteMemo, id)
	if err != nil {
		log.Error(ctx, ErrDeleteMemo, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteMemo, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func scanMemos(rows pgx.Rows) ([]*entities.Memo, error) {
	defer rows.Close()

	memos := make([]*entities.Memo, 0)
	for rows.Next() {
		var m entities.Memo
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanMemo, err)
		}
		memos = append(memos, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrScanMemo, err)
	}
	return memos, nil
}
