package memos

import (
	"fmt"
	"time"

	"memoboard/internal/gateway/domain/entities"
)

// placeholderMemos - фиксированный набор, показываемый при первом запуске без backend.
func placeholderMemos(now time.Time) []entities.Memo {
	ts := formatTime(now)
	return []entities.Memo{
		{ID: 1, Title: "Welcome", Content: "The memo service is unreachable. New memos are kept on this device until it returns.", CreatedAt: ts},
		{ID: 2, Title: "Writing memos", Content: "A memo needs a title or some content.", CreatedAt: ts},
		{ID: 3, Title: "Searching", Content: "Search looks at titles and contents and ignores letter case.", CreatedAt: ts},
	}
}

// placeholderMemo - заглушка для заметки id, недоступной из-за сбоя.
func placeholderMemo(id int64, now time.Time) entities.Memo {
	return entities.Memo{
		ID:        id,
		Title:     fmt.Sprintf("Memo %d", id),
		Content:   "This memo cannot be loaded right now.",
		CreatedAt: formatTime(now),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
