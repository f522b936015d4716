package memos_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/internal/gateway/adapters/mirror"
	"memoboard/internal/gateway/adapters/rest/memos"
	"memoboard/internal/gateway/domain/entities"
)

func TestOfflineSaveSurvivesReconnect(t *testing.T) {
	b := newFakeBackend(t, storedMemo{FID: 1, FTitle: "server"})
	store := mirror.NewMemoryStore()
	online := newClient(b.server.URL, store)
	offline := newClient(unreachableURL(t), store)
	ctx := context.Background()

	require.False(t, online.List(ctx).IsFallback())

	saved, err := offline.Save(ctx, entities.MemoDraft{Title: "offline edit"})
	require.NoError(t, err)
	localID := saved.Value.ID
	assert.Equal(t, memos.MsgSavedLocally, saved.Value.Message)
	assert.Equal(t, []int64{localID, 1}, ids(offline.List(ctx).Value))

	res := online.List(ctx)
	assert.Equal(t, entities.SourceLive, res.Source)
	assert.Equal(t, []int64{101, 1}, ids(res.Value))
	assert.Equal(t, "offline edit", res.Value[0].Title)

	require.Len(t, b.snapshot(), 2)
	assert.NotContains(t, b.body(), "fid")

	after := offline.List(ctx)
	assert.Equal(t, entities.SourceMirror, after.Source)
	assert.Equal(t, []int64{101, 1}, ids(after.Value))

	online.List(ctx)
	assert.Len(t, b.snapshot(), 2, "delivered change must not be sent twice")

	_, found, err := store.Get(ctx, memos.DefaultMirrorKey+memos.PendingSuffix)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPendingChangesKeptWhileServerFails(t *testing.T) {
	b := newFakeBackend(t, storedMemo{FID: 1, FTitle: "server"})
	b.configure(func(b *fakeBackend) { b.saveCode, b.saveMsg = http.StatusInternalServerError, "db is down" })
	store := mirror.NewMemoryStore()
	c := newClient(b.server.URL, store)
	ctx := context.Background()

	saved, err := c.Save(ctx, entities.MemoDraft{Title: "deferred"})
	require.NoError(t, err)
	assert.Equal(t, entities.SourceMirror, saved.Source)

	res := c.List(ctx)
	assert.Equal(t, entities.SourceLive, res.Source)
	assert.Equal(t, []int64{saved.Value.ID, 1}, ids(res.Value))
	assert.Len(t, b.snapshot(), 1)

	offline := newClient(unreachableURL(t), store).List(ctx)
	assert.Equal(t, []int64{saved.Value.ID, 1}, ids(offline.Value))

	b.configure(func(b *fakeBackend) { b.saveCode = 0 })

	res = c.List(ctx)
	assert.Equal(t, []int64{101, 1}, ids(res.Value))
	assert.Equal(t, "deferred", b.snapshot()[0].FTitle)
}

func TestOfflineUpdateAndDeleteReplay(t *testing.T) {
	b := newFakeBackend(t, storedMemo{FID: 1, FTitle: "a"}, storedMemo{FID: 2, FTitle: "b"})
	store := mirror.NewMemoryStore()
	online := newClient(b.server.URL, store)
	offline := newClient(unreachableURL(t), store)
	ctx := context.Background()

	online.List(ctx)

	id := int64(1)
	_, err := offline.Save(ctx, entities.MemoDraft{ID: &id, Title: "a2"})
	require.NoError(t, err)
	ack, err := offline.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, memos.MsgDeletedLocally, ack.Value.Message)

	res := online.List(ctx)
	require.Equal(t, []int64{1}, ids(res.Value))
	assert.Equal(t, "a2", res.Value[0].Title)

	server := b.snapshot()
	require.Len(t, server, 1)
	assert.Equal(t, "a2", server[0].FTitle)
	assert.Equal(t, float64(1), b.body()["fid"])
}

func TestLocalOnlyMemoStaysOffTheWire(t *testing.T) {
	b := newFakeBackend(t)
	store := mirror.NewMemoryStore()
	online := newClient(b.server.URL, store)
	ctx := context.Background()

	saved, err := newClient(unreachableURL(t), store).Save(ctx, entities.MemoDraft{Title: "draft"})
	require.NoError(t, err)
	localID := saved.Value.ID

	before := b.requests.Load()

	got, err := online.Get(ctx, localID)
	require.NoError(t, err)
	assert.Equal(t, entities.SourceMirror, got.Source)
	assert.Equal(t, "draft", got.Value.Title)

	ack, err := online.Delete(ctx, localID)
	require.NoError(t, err)
	assert.Equal(t, memos.MsgDiscarded, ack.Value.Message)
	assert.Equal(t, before, b.requests.Load())

	assert.Empty(t, online.List(ctx).Value)
	assert.Empty(t, b.snapshot())
}

func TestOnlineSaveOfLocalMemoCreatesIt(t *testing.T) {
	b := newFakeBackend(t)
	store := mirror.NewMemoryStore()
	online := newClient(b.server.URL, store)
	ctx := context.Background()

	saved, err := newClient(unreachableURL(t), store).Save(ctx, entities.MemoDraft{Title: "draft"})
	require.NoError(t, err)
	localID := saved.Value.ID

	updated, err := online.Save(ctx, entities.MemoDraft{ID: &localID, Title: "final"})
	require.NoError(t, err)
	assert.Equal(t, entities.SourceLive, updated.Source)
	assert.Equal(t, int64(101), updated.Value.ID)
	assert.NotContains(t, b.body(), "fid")

	offline := newClient(unreachableURL(t), store).List(ctx)
	assert.Equal(t, []int64{101}, ids(offline.Value))

	online.List(ctx)
	assert.Len(t, b.snapshot(), 1)
}
