package memos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"memoboard/internal/gateway/domain/entities"
	"memoboard/pkg/logger"
)

// Константы для логирования очереди отложенных изменений.
const (
	LogPendingDelivered = "pending memo change delivered"
	LogPendingDeferred  = "backend still unavailable, pending memo changes kept"
	LogPendingRejected  = "pending memo change rejected by server, dropped"
	LogPendingCorrupted = "pending memo queue holds invalid json"

	ErrPendingWrite = "failed to persist pending memo queue"
)

// PendingSuffix добавляется к ключу зеркала для очереди отложенных изменений.
const PendingSuffix = ":pending"

type pendingKind string

const (
	pendingSave   pendingKind = "save"
	pendingDelete pendingKind = "delete"
)

// pendingOp - изменение, сделанное без связи с backend.
// Local означает, что ID выдан клиентом и на сервере такой записи нет.
type pendingOp struct {
	Kind      pendingKind `json:"kind"`
	ID        int64       `json:"id"`
	Local     bool        `json:"local,omitempty"`
	Title     string      `json:"title,omitempty"`
	Content   string      `json:"content,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

func (op pendingOp) memo() entities.Memo {
	return entities.Memo{ID: op.ID, Title: op.Title, Content: op.Content, CreatedAt: op.CreatedAt}
}

// draft восстанавливает запрос на сохранение. Локальная запись отправляется как новая.
func (op pendingOp) draft() entities.MemoDraft {
	d := entities.MemoDraft{Title: op.Title, Content: op.Content}
	if !op.Local {
		id := op.ID
		d.ID = &id
	}
	return d
}

func (m *memoMirror) pendingKey() string {
	return m.key + PendingSuffix
}

// loadPending возвращает очередь. Нечитаемая очередь считается пустой.
func (m *memoMirror) loadPending(ctx context.Context) []pendingOp {
	raw, found, err := m.store.Get(ctx, m.pendingKey())
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogMirrorReadFailed, zap.String("key", m.pendingKey()), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}

	var ops []pendingOp
	if err := json.Unmarshal([]byte(raw), &ops); err != nil {
		logger.Log(ctx).Warn(ctx, LogPendingCorrupted, zap.String("key", m.pendingKey()), zap.Error(err))
		return nil
	}
	return ops
}

// storePending сохраняет очередь. Пустая очередь удаляет ключ.
func (m *memoMirror) storePending(ctx context.Context, ops []pendingOp) error {
	var err error
	if len(ops) == 0 {
		err = m.store.Remove(ctx, m.pendingKey())
	} else {
		raw, merr := json.Marshal(ops)
		if merr != nil {
			return fmt.Errorf("%s: %w", ErrMirrorEncode, merr)
		}
		err = m.store.Set(ctx, m.pendingKey(), string(raw))
	}
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogMirrorWriteFailed, zap.String("key", m.pendingKey()), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrPendingWrite, err)
	}
	return nil
}

func findPending(ops []pendingOp, id int64) (pendingOp, bool) {
	if i := slices.IndexFunc(ops, func(op pendingOp) bool { return op.ID == id }); i >= 0 {
		return ops[i], true
	}
	return pendingOp{}, false
}

// localOnly сообщает, что запись id создана offline и еще не отправлена.
func localOnly(ops []pendingOp, id int64) (pendingOp, bool) {
	op, ok := findPending(ops, id)
	return op, ok && op.Kind == pendingSave && op.Local
}

func dropPending(ops []pendingOp, id int64) []pendingOp {
	return slices.DeleteFunc(slices.Clone(ops), func(op pendingOp) bool { return op.ID == id })
}

// queueSave ставит сохранение memo в очередь. Повторное сохранение той же
// записи заменяет предыдущее и сохраняет признак Local.
func queueSave(ops []pendingOp, memo entities.Memo, local bool) []pendingOp {
	if prev, ok := findPending(ops, memo.ID); ok && prev.Kind == pendingSave {
		local = prev.Local
	}
	op := pendingOp{
		Kind:      pendingSave,
		ID:        memo.ID,
		Local:     local,
		Title:     memo.Title,
		Content:   memo.Content,
		CreatedAt: memo.CreatedAt,
	}
	return append(dropPending(ops, memo.ID), op)
}

// queueDelete ставит удаление в очередь. Удаление неотправленной локальной
// записи просто убирает ее из очереди.
func queueDelete(ops []pendingOp, id int64) []pendingOp {
	if _, ok := localOnly(ops, id); ok {
		return dropPending(ops, id)
	}
	return append(dropPending(ops, id), pendingOp{Kind: pendingDelete, ID: id})
}

// overlay накладывает неотправленные изменения на снимок сервера.
func overlay(memos []entities.Memo, ops []pendingOp) []entities.Memo {
	for _, op := range ops {
		switch op.Kind {
		case pendingSave:
			memos = upsert(memos, op.memo())
		case pendingDelete:
			memos, _ = without(memos, op.ID)
		}
	}
	return memos
}

// sync отправляет отложенные изменения по порядку. Первый сетевой сбой или 5xx
// останавливает отправку, остаток очереди сохраняется. Отказ 4xx не повторяется.
// Возвращает неотправленный остаток и признак того, что что-то было доставлено.
func (c *Client) sync(ctx context.Context) ([]pendingOp, bool) {
	ops := c.mirror.loadPending(ctx)
	if len(ops) == 0 {
		return nil, false
	}
	log := logger.Log(ctx)

	var remaining []pendingOp
	delivered := false
	for i, op := range ops {
		err := c.replay(ctx, op)
		if err != nil && absorbable(err) {
			log.Warn(ctx, LogPendingDeferred, zap.Int("count", len(ops)-i), zap.Error(err))
			remaining = ops[i:]
			break
		}
		fields := []zap.Field{zap.String("kind", string(op.Kind)), zap.Int64("id", op.ID)}
		if err != nil {
			log.Warn(ctx, LogPendingRejected, append(fields, zap.Error(err))...)
			continue
		}
		delivered = true
		log.Info(ctx, LogPendingDelivered, fields...)
	}

	_ = c.mirror.storePending(ctx, remaining)
	return remaining, delivered
}

func (c *Client) replay(ctx context.Context, op pendingOp) error {
	if op.Kind == pendingDelete {
		_, err := c.remove(ctx, op.ID)
		if errors.Is(err, entities.ErrNotFound) {
			return nil
		}
		return err
	}
	_, err := c.send(ctx, op.draft())
	return err
}
