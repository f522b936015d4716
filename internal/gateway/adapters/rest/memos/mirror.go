package memos

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"memoboard/internal/gateway/domain/entities"
	"memoboard/internal/gateway/ports/mirror"
	"memoboard/pkg/logger"
)

// Константы для логирования зеркала.
const (
	LogMirrorReadFailed  = "failed to read memo mirror"
	LogMirrorWriteFailed = "failed to write memo mirror"
	LogMirrorCorrupted   = "memo mirror holds invalid json"

	ErrMirrorWrite  = "failed to persist memo mirror"
	ErrMirrorEncode = "failed to encode memo mirror"
)

// DefaultMirrorKey - ключ зеркала по умолчанию.
const DefaultMirrorKey = "memoboard:memos"

// memoMirror хранит снимок заметок JSON-массивом под одним ключом.
//
// Чтение-изменение-запись не атомарны: параллельные Save и Delete
// могут затереть изменения друг друга, побеждает последняя запись.
type memoMirror struct {
	store mirror.Store
	key   string
}

// load возвращает снимок. found == false, если зеркала нет или оно нечитаемо.
func (m *memoMirror) load(ctx context.Context) ([]entities.Memo, bool) {
	raw, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogMirrorReadFailed, zap.String("key", m.key), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var memos []entities.Memo
	if err := json.Unmarshal([]byte(raw), &memos); err != nil {
		logger.Log(ctx).Warn(ctx, LogMirrorCorrupted, zap.String("key", m.key), zap.Error(err))
		return nil, false
	}
	if memos == nil {
		memos = []entities.Memo{}
	}
	return memos, true
}

func (m *memoMirror) replace(ctx context.Context, memos []entities.Memo) error {
	if memos == nil {
		memos = []entities.Memo{}
	}
	raw, err := json.Marshal(memos)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMirrorEncode, err)
	}
	if err := m.store.Set(ctx, m.key, string(raw)); err != nil {
		logger.Log(ctx).Warn(ctx, LogMirrorWriteFailed, zap.String("key", m.key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrMirrorWrite, err)
	}
	return nil
}

// upsert заменяет запись с тем же ID или добавляет новую в начало.
func upsert(memos []entities.Memo, memo entities.Memo) []entities.Memo {
	if i := slices.IndexFunc(memos, func(m entities.Memo) bool { return m.ID == memo.ID }); i >= 0 {
		out := slices.Clone(memos)
		out[i] = memo
		return out
	}
	return append([]entities.Memo{memo}, memos...)
}

// without удаляет запись id. removed == false, если ее не было.
func without(memos []entities.Memo, id int64) ([]entities.Memo, bool) {
	out := slices.DeleteFunc(slices.Clone(memos), func(m entities.Memo) bool { return m.ID == id })
	return out, len(out) != len(memos)
}

func find(memos []entities.Memo, id int64) (entities.Memo, bool) {
	if i := slices.IndexFunc(memos, func(m entities.Memo) bool { return m.ID == id }); i >= 0 {
		return memos[i], true
	}
	return entities.Memo{}, false
}

// nextLocalID выдает ID на основе времени, больший любого существующего.
func nextLocalID(nowMillis int64, memos []entities.Memo) int64 {
	id := nowMillis
	for _, m := range memos {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}
