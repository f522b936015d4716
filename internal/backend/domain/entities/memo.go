// Package entities определяет доменные сущности dev backend.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки уровня домена.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidParams = errors.New("invalid parameters")
)

// RecentMemoCount - число последних заметок в статистике.
const RecentMemoCount = 5

// Memo - заметка.
type Memo struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
}

// NewMemo создает заметку с обрезанными полями.
func NewMemo(title, content string) *Memo {
	return &Memo{
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}
}

// Blank сообщает, что у заметки нет ни заголовка, ни текста.
func (m *Memo) Blank() bool {
	return m.Title == "" && m.Content == ""
}

// MemoStats - сводка по заметкам.
type MemoStats struct {
	Total        int
	TitledCount  int
	ContentCount int
	Recent       []*Memo
}

// ComputeMemoStats считает сводку по списку, упорядоченному от новых к старым.
func ComputeMemoStats(memos []*Memo) MemoStats {
	stats := MemoStats{Total: len(memos), Recent: make([]*Memo, 0, RecentMemoCount)}
	for i, m := range memos {
		if m.Title != "" {
			stats.TitledCount++
		}
		if m.Content != "" {
			stats.ContentCount++
		}
		if i < RecentMemoCount {
			stats.Recent = append(stats.Recent, m)
		}
	}
	return stats
}
