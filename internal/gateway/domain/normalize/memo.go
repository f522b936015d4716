package normalize

import "memoboard/internal/gateway/domain/entities"

// Ключи полей заметки в порядке приоритета: верхний регистр сервера,
// затем нижний регистр, затем общий псевдоним.
var (
	memoIDKeys      = []string{"FID", "fid", "id"}
	memoTitleKeys   = []string{"FTITLE", "ftitle", "title"}
	memoContentKeys = []string{"FCONTENT", "fcontent", "content"}
	memoCreatedKeys = []string{"FCREATED_AT", "fcreated_at", "created_at", "createdAt"}
)

// Memo приводит объект заметки к канонической форме.
// Отсутствующая дата остается пустой: подстановка времени делается только в offline-ветке.
func Memo(raw Object) entities.Memo {
	id, _ := pickInt(raw, memoIDKeys...)
	return entities.Memo{
		ID:        id,
		Title:     pickString(raw, memoTitleKeys...),
		Content:   pickString(raw, memoContentKeys...),
		CreatedAt: pickString(raw, memoCreatedKeys...),
	}
}

// Memos нормализует массив заметок с сохранением длины.
// Элемент, не являющийся объектом, дает заметку с нулевыми полями.
func Memos(items []any) []entities.Memo {
	out := make([]entities.Memo, 0, len(items))
	for _, item := range items {
		o, _ := AsObject(item)
		out = append(out, Memo(o))
	}
	return out
}

// MemoRequest - тело POST на сохранение заметки.
type MemoRequest struct {
	FID      *int64 `json:"fid,omitempty"`
	FTitle   string `json:"ftitle"`
	FContent string `json:"fcontent"`
}

// MemoPayload отображает черновик в поля backend.
func MemoPayload(d entities.MemoDraft) MemoRequest {
	return MemoRequest{FID: d.ID, FTitle: d.Title, FContent: d.Content}
}

// MemoStats разбирает ответ /stats. ok == false, если в ответе нет total.
func MemoStats(raw Object) (entities.MemoStats, bool) {
	total, ok := pickInt(raw, "total", "totalCount")
	if !ok {
		return entities.MemoStats{}, false
	}
	titled, _ := pickInt(raw, "titledCount", "titled_count")
	content, _ := pickInt(raw, "contentCount", "content_count")

	stats := entities.MemoStats{
		Total:        int(total),
		TitledCount:  int(titled),
		ContentCount: int(content),
		RecentFive:   []entities.Memo{},
	}
	if v, found := pick(raw, "recentFive", "recent"); found {
		if items, isArray := AsArray(v); isArray {
			stats.RecentFive = Memos(items)
		}
	}
	return stats, true
}
