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

// Сообщения об ошибках репозитория досок.
const (
	ErrGetBoard   = "failed to get board"
	ErrCountPosts = "failed to count posts"
	ErrListPosts  = "failed to list posts"
	ErrGetPost    = "failed to get post"
	ErrCreatePost = "failed to create post"
	ErrUpdatePost = "failed to update post"
	ErrDeletePost = "failed to delete post"
	ErrScanPost   = "failed to scan post"
)

const (
	postColumns     = `br_pid, br_cd, br_title, br_content, br_reg_id, br_reg_dt, br_hit`
	postFilter      = `WHERE br_cd = $1 AND ($2 = '' OR br_title ILIKE '%' || $2 || '%' OR br_content ILIKE '%' || $2 || '%')`
	queryGetBoard   = `SELECT b.br_cd, b.br_nm, b.br_desc, (SELECT COUNT(*) FROM board_posts p WHERE p.br_cd = b.br_cd) FROM boards b WHERE b.br_cd = $1`
	queryCountPosts = `SELECT COUNT(*) FROM board_posts ` + postFilter
	queryListPosts  = `SELECT ` + postColumns + ` FROM board_posts ` + postFilter + ` ORDER BY br_pid DESC LIMIT $3 OFFSET $4`
	queryGetPost    = `UPDATE board_posts SET br_hit = br_hit + 1 WHERE br_pid = $1 RETURNING ` + postColumns
	queryCreatePost = `INSERT INTO board_posts (br_cd, br_title, br_content, br_reg_id, br_reg_dt) VALUES ($1, $2, $3, $4, $5) RETURNING br_pid`
	queryUpdatePost = `UPDATE board_posts SET br_title = $1, br_content = $2 WHERE br_pid = $3`
	queryDeletePost = `DELETE FROM board_posts WHERE br_pid = $1`
)

// BoardRepository реализует repositories.BoardRepository.
type BoardRepository struct {
	pool PgxPoolInterface
}

// NewBoardRepository создает новый репозиторий досок.
func NewBoardRepository(pool PgxPoolInterface) repositories.BoardRepository {
	return &BoardRepository{pool: pool}
}

// GetBoard возвращает доску с числом записей.
func (r *BoardRepository) GetBoard(ctx context.Context, code string) (*entities.Board, error) {
	log := logger.Log(ctx).With(zap.String("method", "BoardRepository.GetBoard"), zap.String("br_cd", code))

	var b entities.Board
	err := r.pool.QueryRow(ctx, queryGetBoard, code).Scan(&b.Code, &b.Name, &b.Description, &b.TotalPosts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "board not found")
			return nil, nil
		}
		log.Error(ctx, ErrGetBoard, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetBoard, err)
	}
	return &b, nil
}

// ListPosts возвращает страницу записей и их общее число.
func (r *BoardRepository) ListPosts(ctx context.Context, code, keyword string, limit, offset int) ([]*entities.Post, int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "BoardRepository.ListPosts"), zap.String("br_cd", code))
	log.Debug(ctx, "listing posts", zap.String("keyword", keyword), zap.Int("limit", limit), zap.Int("offset", offset))

	var total int64
	if err := r.pool.QueryRow(ctx, queryCountPosts, code, keyword).Scan(&total); err != nil {
		log.Error(ctx, ErrCountPosts, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", ErrCountPosts, err)
	}

	rows, err := r.pool.Query(ctx, queryListPosts, code, keyword, limit, offset)
	if err != nil {
		log.Error(ctx, ErrListPosts, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", ErrListPosts, err)
	}
	defer rows.Close()

	posts := make([]*entities.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			log.Error(ctx, ErrScanPost, zap.Error(err))
			return nil, 0, fmt.Errorf("%s: %w", ErrScanPost, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListPosts, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", ErrListPosts, err)
	}

	return posts, total, nil
}

// GetPost возвращает запись и увеличивает счетчик просмотров.
func (r *BoardRepository) GetPost(ctx context.Context, id int64) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", "BoardRepository.GetPost"), zap.Int64("br_pid", id))

	p, err := scanPost(r.pool.QueryRow(ctx, queryGetPost, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "post not found")
			return nil, nil
		}
		log.Error(ctx, ErrGetPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetPost, err)
	}
	return p, nil
}

// CreatePost сохраняет новую запись.
func (r *BoardRepository) CreatePost(ctx context.Context, post *entities.Post) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "BoardRepository.CreatePost"), zap.String("br_cd", post.BoardCode))

	var id int64
	err := r.pool.QueryRow(ctx, queryCreatePost,
		post.BoardCode, post.Title, post.Content, post.Author, post.CreatedAt,
	).Scan(&id)
	if err != nil {
		log.Error(ctx, ErrCreatePost, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreatePost, err)
	}

	log.Debug(ctx, "post created", zap.Int64("br_pid", id))
	return id, nil
}

// UpdatePost изменяет заголовок и текст записи.
func (r *BoardRepository) UpdatePost(ctx context.Context, post *entities.Post) error {
	log := logger.Log(ctx).With(zap.String("method", "BoardRepository.UpdatePost"), zap.Int64("br_pid", post.ID))

	tag, err := r.pool.Exec(ctx, queryUpdatePost, post.Title, post.Content, post.ID)
	if err != nil {
		log.Error(ctx, ErrUpdatePost, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdatePost, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// DeletePost удаляет запись.
func (r *BoardRepository) DeletePost(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "BoardRepository.DeletePost"), zap.Int64("br_pid", id))

	tag, err := r.pool.Exec(ctx, queryDeletePost, id)
	if err != nil {
		log.Error(ctx, ErrDeletePost, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletePost, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var p entities.Post
	if err := row.Scan(&p.ID, &p.BoardCode, &p.Title, &p.Content, &p.Author, &p.CreatedAt, &p.Hits); err != nil {
		return nil, err
	}
	return &p, nil
}
