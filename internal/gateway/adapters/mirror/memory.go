// Package mirror содержит реализации хранилища локального зеркала.
package mirror

import (
	"context"
	"sync"

	"memoboard/internal/gateway/ports/mirror"
)

// MemoryStore хранит значения в памяти процесса.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ mirror.Store = (*MemoryStore)(nil)

// NewMemoryStore создает пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get возвращает значение по ключу.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set сохраняет значение.
func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Remove удаляет значение.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Close ничего не делает.
func (s *MemoryStore) Close() error {
	return nil
}
