package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/internal/backend/adapters/postgres"
	"memoboard/internal/backend/domain/entities"
	"memoboard/internal/backend/ports/repositories"
	"memoboard/pkg/logger"
)

var errDatabaseConnection = errors.New("database connection failed")

var (
	memoCols = []string{"fid", "ftitle", "fcontent", "fcreated_at"}
	postCols = []string{"br_pid", "br_cd", "br_title", "br_content", "br_reg_id", "br_reg_dt", "br_hit"}
	created  = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logger.NewContext(context.Background(), logger.NewNop())
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMock(t)
	factory := postgres.NewRepositoryFactory(mock)

	assert.Implements(t, (*repositories.MemoRepository)(nil), factory.MemoRepository())
	assert.Implements(t, (*repositories.BoardRepository)(nil), factory.BoardRepository())
}

func TestMemoRepository_List(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns rows in order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("SELECT fid, ftitle, fcontent, fcreated_at FROM memos ORDER BY fid DESC")).
			WillReturnRows(pgxmock.NewRows(memoCols).
				AddRow(int64(2), "second", "", created).
				AddRow(int64(1), "first", "body", created))

		memos, err := postgres.NewMemoRepository(mock).List(ctx)

		require.NoError(t, err)
		require.Len(t, memos, 2)
		assert.Equal(t, int64(2), memos[0].ID)
		assert.Equal(t, "body", memos[1].Content)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT fid").WillReturnError(errDatabaseConnection)

		_, err := postgres.NewMemoRepository(mock).List(ctx)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrListMemos)
	})
}

func TestMemoRepository_Search(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(q("WHERE ftitle ILIKE '%' || $1 || '%'")).
		WithArgs("go").
		WillReturnRows(pgxmock.NewRows(memoCols).AddRow(int64(3), "go", "", created))

	memos, err := postgres.NewMemoRepository(mock).Search(testContext(t), "go")

	require.NoError(t, err)
	require.Len(t, memos, 1)
}

func TestMemoRepository_GetByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("FROM memos WHERE fid = $1")).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows(memoCols).AddRow(int64(5), "t", "c", created))

		memo, err := postgres.NewMemoRepository(mock).GetByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, &entities.Memo{ID: 5, Title: "t", Content: "c", CreatedAt: created}, memo)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("FROM memos WHERE fid = $1")).
			WithArgs(int64(9)).
			WillReturnError(pgx.ErrNoRows)

		memo, err := postgres.NewMemoRepository(mock).GetByID(ctx, 9)

		require.NoError(t, err)
		assert.Nil(t, memo)
	})
}

func TestMemoRepository_CreateUpdateDelete(t *testing.T) {
	ctx := testContext(t)
	memo := &entities.Memo{ID: 4, Title: "t", Content: "c", CreatedAt: created}

	t.Run("create", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("INSERT INTO memos (ftitle, fcontent, fcreated_at) VALUES ($1, $2, $3) RETURNING fid")).
			WithArgs("t", "c", created).
			WillReturnRows(pgxmock.NewRows([]string{"fid"}).AddRow(int64(11)))

		id, err := postgres.NewMemoRepository(mock).Create(ctx, memo)

		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
	})

	t.Run("create error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO memos").WillReturnError(errDatabaseConnection)

		_, err := postgres.NewMemoRepository(mock).Create(ctx, memo)

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrCreateMemo)
	})

	t.Run("update missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(q("UPDATE memos SET ftitle = $1, fcontent = $2 WHERE fid = $3")).
			WithArgs("t", "c", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := postgres.NewMemoRepository(mock).Update(ctx, memo)

		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(q("DELETE FROM memos WHERE fid = $1")).
			WithArgs(int64(4)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewMemoRepository(mock).Delete(ctx, 4))
	})

	t.Run("delete missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM memos").
			WithArgs(int64(4)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, postgres.NewMemoRepository(mock).Delete(ctx, 4), entities.ErrNotFound)
	})
}

func TestBoardRepository_GetBoard(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("FROM boards b WHERE b.br_cd = $1")).
			WithArgs("B1").
			WillReturnRows(pgxmock.NewRows([]string{"br_cd", "br_nm", "br_desc", "count"}).
				AddRow("B1", "Notice", "news", int64(25)))

		board, err := postgres.NewBoardRepository(mock).GetBoard(ctx, "B1")

		require.NoError(t, err)
		assert.Equal(t, &entities.Board{Code: "B1", Name: "Notice", Description: "news", TotalPosts: 25}, board)
	})

	t.Run("unknown", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM boards").WithArgs("B9").WillReturnError(pgx.ErrNoRows)

		board, err := postgres.NewBoardRepository(mock).GetBoard(ctx, "B9")

		require.NoError(t, err)
		assert.Nil(t, board)
	})
}

func TestBoardRepository_ListPosts(t *testing.T) {
	ctx := testContext(t)

	t.Run("page with total", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("SELECT COUNT(*) FROM board_posts WHERE br_cd = $1")).
			WithArgs("B1", "").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(25)))
		mock.ExpectQuery(q("ORDER BY br_pid DESC LIMIT $3 OFFSET $4")).
			WithArgs("B1", "", 10, 20).
			WillReturnRows(pgxmock.NewRows(postCols).
				AddRow(int64(5), "B1", "t5", "c5", "kim", created, int64(3)))

		posts, total, err := postgres.NewBoardRepository(mock).ListPosts(ctx, "B1", "", 10, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		require.Len(t, posts, 1)
		assert.Equal(t, "kim", posts[0].Author)
		assert.Equal(t, int64(3), posts[0].Hits)
	})

	t.Run("count error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errDatabaseConnection)

		_, _, err := postgres.NewBoardRepository(mock).ListPosts(ctx, "B1", "x", 10, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrCountPosts)
	})
}

func TestBoardRepository_GetPost(t *testing.T) {
	ctx := testContext(t)

	t.Run("increments hits", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("UPDATE board_posts SET br_hit = br_hit + 1 WHERE br_pid = $1 RETURNING")).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(postCols).
				AddRow(int64(7), "B2", "t", "c", "lee", created, int64(8)))

		post, err := postgres.NewBoardRepository(mock).GetPost(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(8), post.Hits)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE board_posts").WithArgs(int64(999)).WillReturnError(pgx.ErrNoRows)

		post, err := postgres.NewBoardRepository(mock).GetPost(ctx, 999)

		require.NoError(t, err)
		assert.Nil(t, post)
	})
}

func TestBoardRepository_Writes(t *testing.T) {
	ctx := testContext(t)
	post := &entities.Post{ID: 3, BoardCode: "B3", Title: "q", Content: "why", Author: "kim", CreatedAt: created}

	t.Run("create", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(q("INSERT INTO board_posts (br_cd, br_title, br_content, br_reg_id, br_reg_dt)")).
			WithArgs("B3", "q", "why", "kim", created).
			WillReturnRows(pgxmock.NewRows([]string{"br_pid"}).AddRow(int64(42)))

		id, err := postgres.NewBoardRepository(mock).CreatePost(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("update", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(q("UPDATE board_posts SET br_title = $1, br_content = $2 WHERE br_pid = $3")).
			WithArgs("q", "why", int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewBoardRepository(mock).UpdatePost(ctx, post))
	})

	t.Run("delete error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(q("DELETE FROM board_posts WHERE br_pid = $1")).
			WithArgs(int64(3)).
			WillReturnError(errDatabaseConnection)

		err := postgres.NewBoardRepository(mock).DeletePost(ctx, 3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrDeletePost)
	})
}
