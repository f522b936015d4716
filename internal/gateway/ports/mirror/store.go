// Package mirror определяет хранилище локального зеркала деградированного режима.
package mirror

import "context"

// Store - строковое key-value хранилище.
// Реализации не обязаны обеспечивать атомарность чтения-изменения-записи.
type Store interface {
	// Get возвращает значение и признак его наличия.
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key string, value string) error

	// Remove удаляет ключ. Отсутствующий ключ не считается ошибкой.
	Remove(ctx context.Context, key string) error

	Close() error
}
