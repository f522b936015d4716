package entities

import (
	"strings"
	"time"
)

// DefaultAuthor подставляется, если автор записи не указан.
const DefaultAuthor = "anonymous"

// Board - доска с числом записей.
type Board struct {
	Code        string
	Name        string
	Description string
	TotalPosts  int64
}

// Post - запись доски.
type Post struct {
	ID        int64
	BoardCode string
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	Hits      int64
}

// NewPost создает запись и проверяет обязательные поля.
func NewPost(boardCode, title, content, author string) (*Post, error) {
	p := &Post{
		BoardCode: strings.TrimSpace(boardCode),
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		Author:    strings.TrimSpace(author),
		CreatedAt: time.Now().UTC(),
	}
	if p.BoardCode == "" || p.Title == "" || p.Content == "" {
		return nil, ErrInvalidParams
	}
	if p.Author == "" {
		p.Author = DefaultAuthor
	}
	return p, nil
}

// PostPage - страница записей.
type PostPage struct {
	Posts         []*Post
	CurrentPage   int
	TotalPages    int
	TotalElements int64
}
