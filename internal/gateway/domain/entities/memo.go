package entities

import "strings"

// Memo - каноническое представление заметки.
type Memo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// MemoDraft - данные для сохранения. ID == nil означает создание.
type MemoDraft struct {
	ID      *int64
	Title   string
	Content string
}

// Blank сообщает, что заголовок и текст пусты.
func (d MemoDraft) Blank() bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == ""
}

// SaveResult - ответ на сохранение заметки.
type SaveResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message,omitempty"`
}

// Ack - подтверждение операции без данных.
type Ack struct {
	Message string `json:"message,omitempty"`
}

// MemoStats - сводка по списку заметок.
type MemoStats struct {
	Total        int    `json:"total"`
	TitledCount  int    `json:"titledCount"`
	ContentCount int    `json:"contentCount"`
	RecentFive   []Memo `json:"recentFive"`
}

const recentLimit = 5

// ComputeStats считает сводку по memos в порядке списка (без пересортировки).
func ComputeStats(memos []Memo) MemoStats {
	stats := MemoStats{Total: len(memos), RecentFive: make([]Memo, 0, recentLimit)}
	for i, m := range memos {
		if strings.TrimSpace(m.Title) != "" {
			stats.TitledCount++
		}
		if strings.TrimSpace(m.Content) != "" {
			stats.ContentCount++
		}
		if i < recentLimit {
			stats.RecentFive = append(stats.RecentFive, m)
		}
	}
	return stats
}

// Matches проверяет вхождение keyword в заголовок или текст без учета регистра.
func (m Memo) Matches(keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), k) ||
		strings.Contains(strings.ToLower(m.Content), k)
}

// FilterMemos возвращает заметки, подходящие под keyword.
func FilterMemos(memos []Memo, keyword string) []Memo {
	out := make([]Memo, 0, len(memos))
	for _, m := range memos {
		if m.Matches(keyword) {
			out = append(out, m)
		}
	}
	return out
}
