package entities

import "strings"

// Post - запись доски.
type Post struct {
	SequenceID   int64  `json:"sequenceId"`
	BoardCode    string `json:"boardCode"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Author       string `json:"author"`
	CreatedAt    string `json:"createdAt,omitempty"`
	ViewCount    int64  `json:"viewCount"`
	CommentCount int64  `json:"commentCount"`
}

// PostDraft - данные новой записи.
type PostDraft struct {
	BoardCode string `json:"boardCode"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
}

// PostUpdate - изменяемые поля записи.
type PostUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// WriteResult - ответ backend на запись, изменение или удаление.
type WriteResult struct {
	Success bool   `json:"success"`
	ID      *int64 `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validate проверяет обязательные поля новой записи.
func (d PostDraft) Validate() error {
	if strings.TrimSpace(d.BoardCode) == "" {
		return NewValidationError("create post", "board code is required")
	}
	return PostUpdate{Title: d.Title, Content: d.Content}.Validate()
}

// Validate проверяет заголовок и текст.
func (u PostUpdate) Validate() error {
	if strings.TrimSpace(u.Title) == "" {
		return NewValidationError("post", "title is required")
	}
	if strings.TrimSpace(u.Content) == "" {
		return NewValidationError("post", "content is required")
	}
	return nil
}
