package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/internal/backend/domain/entities"
)

func TestNewMemo(t *testing.T) {
	m := entities.NewMemo("  title ", "")
	assert.Equal(t, "title", m.Title)
	assert.False(t, m.Blank())
	assert.True(t, entities.NewMemo(" ", "\t").Blank())
}

func TestComputeMemoStats(t *testing.T) {
	memos := []*entities.Memo{
		{ID: 7, Title: "a"},
		{ID: 6, Content: "b"},
		{ID: 5, Title: "c", Content: "d"},
		{ID: 4},
		{ID: 3, Title: "e"},
		{ID: 2, Title: "f"},
	}

	stats := entities.ComputeMemoStats(memos)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.TitledCount)
	assert.Equal(t, 2, stats.ContentCount)
	require.Len(t, stats.Recent, entities.RecentMemoCount)
	assert.Equal(t, int64(7), stats.Recent[0].ID)
}

func TestNewPost(t *testing.T) {
	p, err := entities.NewPost("B1", "title", "body", "")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultAuthor, p.Author)

	_, err = entities.NewPost("B1", "", "body", "kim")
	assert.ErrorIs(t, err, entities.ErrInvalidParams)

	_, err = entities.NewPost(" ", "t", "body", "kim")
	assert.ErrorIs(t, err, entities.ErrInvalidParams)
}
