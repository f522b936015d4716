package entities

// Page - страница результатов.
type Page[T any] struct {
	Items         []T   `json:"items"`
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements,omitempty"`
}

// Значения пагинации по умолчанию.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// NormalizePaging подставляет значения по умолчанию вместо неположительных.
func NormalizePaging(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return page, size
}

// EmptyPage - пустая страница для деградированного режима.
func EmptyPage[T any](page int) Page[T] {
	return Page[T]{Items: []T{}, CurrentPage: page, TotalPages: 0}
}

// TotalPages возвращает число страниц размера size для total элементов.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// ClampPage ограничивает page диапазоном [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate режет items на страницы локально.
func Paginate[T any](items []T, page, size int) Page[T] {
	page, size = NormalizePaging(page, size)
	total := int64(len(items))

	out := Page[T]{
		Items:         []T{},
		CurrentPage:   page,
		TotalPages:    TotalPages(total, size),
		TotalElements: total,
	}

	start := (page - 1) * size
	if start >= len(items) {
		return out
	}
	end := min(start+size, len(items))
	out.Items = append(out.Items, items[start:end]...)
	return out
}

// ListState - состояние списка на стороне представления.
type ListState string

const (
	ListIdle    ListState = "idle"
	ListLoading ListState = "loading"
	ListLoaded  ListState = "loaded"
	ListEmpty   ListState = "empty"
	ListErrored ListState = "errored"
)

// DeriveListState восстанавливает состояние списка по результату клиента.
// Ошибка имеет приоритет: пустая страница с Reason - это Errored, не Empty.
func DeriveListState(items int, fallback bool, reason string) ListState {
	switch {
	case fallback && reason != "" && items == 0:
		return ListErrored
	case items == 0:
		return ListEmpty
	default:
		return ListLoaded
	}
}
