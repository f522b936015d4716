package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"memoboard/internal/gateway/domain/entities"
)

type mockMemoClient struct {
	mock.Mock
}

func (m *mockMemoClient) List(ctx context.Context) entities.Result[[]entities.Memo] {
	args := m.Called(ctx)
	return args.Get(0).(entities.Result[[]entities.Memo])
}

func (m *mockMemoClient) Get(ctx context.Context, id int64) (entities.Result[entities.Memo], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Result[entities.Memo]), args.Error(1)
}

func (m *mockMemoClient) Save(ctx context.Context, draft entities.MemoDraft) (entities.Result[entities.SaveResult], error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(entities.Result[entities.SaveResult]), args.Error(1)
}

func (m *mockMemoClient) Delete(ctx context.Context, id int64) (entities.Result[entities.Ack], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Result[entities.Ack]), args.Error(1)
}

func (m *mockMemoClient) Search(ctx context.Context, keyword string) entities.Result[[]entities.Memo] {
	args := m.Called(ctx, keyword)
	return args.Get(0).(entities.Result[[]entities.Memo])
}

func (m *mockMemoClient) Stats(ctx context.Context) entities.Result[entities.MemoStats] {
	args := m.Called(ctx)
	return args.Get(0).(entities.Result[entities.MemoStats])
}

type mockBoardClient struct {
	mock.Mock
}

func (m *mockBoardClient) BoardInfo(ctx context.Context, code string) entities.Result[entities.BoardInfo] {
	args := m.Called(ctx, code)
	return args.Get(0).(entities.Result[entities.BoardInfo])
}

func (m *mockBoardClient) ListPosts(ctx context.Context, code string, page, size int) entities.Result[entities.Page[entities.Post]] {
	args := m.Called(ctx, code, page, size)
	return args.Get(0).(entities.Result[entities.Page[entities.Post]])
}

func (m *mockBoardClient) SearchPosts(ctx context.Context, code, keyword string, page, size int) entities.Result[entities.Page[entities.Post]] {
	args := m.Called(ctx, code, keyword, page, size)
	return args.Get(0).(entities.Result[entities.Page[entities.Post]])
}

func (m *mockBoardClient) PostDetail(ctx context.Context, seq int64) (entities.Post, error) {
	args := m.Called(ctx, seq)
	return args.Get(0).(entities.Post), args.Error(1)
}

func (m *mockBoardClient) CreatePost(ctx context.Context, draft entities.PostDraft) (entities.WriteResult, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(entities.WriteResult), args.Error(1)
}

func (m *mockBoardClient) UpdatePost(ctx context.Context, seq int64, update entities.PostUpdate) (entities.WriteResult, error) {
	args := m.Called(ctx, seq, update)
	return args.Get(0).(entities.WriteResult), args.Error(1)
}

func (m *mockBoardClient) DeletePost(ctx context.Context, seq int64) (entities.WriteResult, error) {
	args := m.Called(ctx, seq)
	return args.Get(0).(entities.WriteResult), args.Error(1)
}
