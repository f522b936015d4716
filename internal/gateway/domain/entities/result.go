package entities

// Source показывает, откуда взяты данные результата.
type Source string

const (
	// SourceLive - ответ backend.
	SourceLive Source = "live"
	// SourceMirror - локальное зеркало деградированного режима.
	SourceMirror Source = "mirror"
	// SourcePlaceholder - сгенерированные клиентом данные-заглушки.
	SourcePlaceholder Source = "placeholder"
)

// Result - значение с пометкой о происхождении.
// Для Source != SourceLive поле Reason содержит текст исходной ошибки.
type Result[T any] struct {
	Value  T      `json:"value"`
	Source Source `json:"source"`
	Reason string `json:"reason,omitempty"`
}

// Live оборачивает данные, полученные от backend.
func Live[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceLive}
}

// Fallback оборачивает данные деградированного режима.
func Fallback[T any](v T, source Source, cause error) Result[T] {
	r := Result[T]{Value: v, Source: source}
	if cause != nil {
		r.Reason = cause.Error()
	}
	return r
}

// IsFallback сообщает, что данные получены не от backend.
func (r Result[T]) IsFallback() bool {
	return r.Source != SourceLive
}
