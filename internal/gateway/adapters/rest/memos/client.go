// Package memos реализует клиент ресурса заметок с деградированным режимом.
package memos

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memoboard/internal/gateway/adapters/rest"
	"memoboard/internal/gateway/domain/entities"
	"memoboard/internal/gateway/domain/normalize"
	"memoboard/internal/gateway/ports/clients"
	"memoboard/internal/gateway/ports/mirror"
	"memoboard/pkg/logger"
)

// Названия операций для логов и ошибок.
const (
	OpList   = "list memos"
	OpGet    = "get memo"
	OpSave   = "save memo"
	OpDelete = "delete memo"
	OpSearch = "search memos"
	OpStats  = "memo stats"
)

// Константы для логирования.
const (
	LogFallbackMirror      = "serving memos from local mirror"
	LogFallbackPlaceholder = "serving placeholder memos"
	LogSavedLocally        = "memo saved to local mirror"
	LogDeletedLocally      = "memo removed from local mirror"
	LogStatsComputed       = "memo stats computed from list"
)

// Сообщения результатов.
const (
	MsgSavedLocally   = "saved locally, will be sent to the server once it is reachable"
	MsgDeletedLocally = "deleted locally, will be sent to the server once it is reachable"
	MsgDiscarded      = "unsent local memo discarded"
	MsgEmptyMemo      = "title or content is required"
	MsgRejected       = "request rejected by server"
)

// Client - клиент /api/memos.
type Client struct {
	transport *rest.Transport
	mirror    *memoMirror
	now       func() time.Time
}

var _ clients.MemoClient = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithMirrorKey задает ключ зеркала в хранилище.
func WithMirrorKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.mirror.key = key
		}
	}
}

// New создает клиент. store хранит зеркало деградированного режима.
func New(transport *rest.Transport, store mirror.Store, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		mirror:    &memoMirror{store: store, key: DefaultMirrorKey},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List возвращает все заметки. При успехе сначала отправляет отложенные
// изменения, затем обновляет снимок зеркала; неотправленные изменения
// накладываются на ответ сервера.
func (c *Client) List(ctx context.Context) entities.Result[[]entities.Memo] {
	call := rest.Call{Method: fiber.MethodGet}
	memos, err := c.fetchList(ctx, OpList, call)
	if err != nil {
		return c.fallbackList(ctx, err)
	}

	if remaining, delivered := c.sync(ctx); delivered || len(remaining) > 0 {
		if delivered {
			if fresh, ferr := c.fetchList(ctx, OpList, call); ferr == nil {
				memos = fresh
			}
		}
		memos = overlay(memos, remaining)
	}

	_ = c.mirror.replace(ctx, memos)
	return entities.Live(memos)
}

// Get возвращает заметку по id. Сбой транспорта дает запись из зеркала или заглушку.
// Неотправленная offline-запись возвращается из зеркала без запроса.
func (c *Client) Get(ctx context.Context, id int64) (entities.Result[entities.Memo], error) {
	if op, ok := localOnly(c.mirror.loadPending(ctx), id); ok {
		return entities.Fallback(c.withTimestamp(op.memo()), entities.SourceMirror, nil), nil
	}

	reply, err := c.transport.Do(ctx, OpGet, rest.Call{Method: fiber.MethodGet, Path: "/" + strconv.FormatInt(id, 10)})
	if err != nil {
		if !errors.Is(err, entities.ErrTransport) {
			return entities.Result[entities.Memo]{}, err
		}
		if snapshot, ok := c.mirror.load(ctx); ok {
			if memo, found := find(snapshot, id); found {
				return entities.Fallback(c.withTimestamp(memo), entities.SourceMirror, err), nil
			}
		}
		return entities.Fallback(placeholderMemo(id, c.now()), entities.SourcePlaceholder, err), nil
	}

	env, err := reply.Envelope(OpGet)
	if err != nil {
		return entities.Result[entities.Memo]{}, err
	}
	obj, ok := env.Item()
	if env.Negative() || !ok || len(obj) == 0 {
		return entities.Result[entities.Memo]{}, entities.NewNotFoundError(OpGet, env.Message)
	}

	memo := normalize.Memo(obj)
	if memo.ID == 0 {
		memo.ID = id
	}
	return entities.Live(memo), nil
}

// Save создает или обновляет заметку. Пустые заголовок и текст отклоняются без запроса.
// Сетевой сбой и 5xx переводят сохранение в локальное зеркало и очередь отправки.
func (c *Client) Save(ctx context.Context, draft entities.MemoDraft) (entities.Result[entities.SaveResult], error) {
	if draft.Blank() {
		return entities.Result[entities.SaveResult]{}, entities.NewValidationError(OpSave, MsgEmptyMemo)
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)

	// Запись, созданная offline, на сервере еще не существует и отправляется как новая.
	ops := c.mirror.loadPending(ctx)
	outgoing := draft
	var localID int64
	if draft.ID != nil {
		if _, ok := localOnly(ops, *draft.ID); ok {
			localID, outgoing.ID = *draft.ID, nil
		}
	}

	env, err := c.send(ctx, outgoing)
	if err != nil {
		if absorbable(err) {
			return c.saveLocally(ctx, draft, err)
		}
		return entities.Result[entities.SaveResult]{}, err
	}

	snapshot, exists := c.mirror.load(ctx)
	id, ok := savedID(env)
	switch {
	case ok:
	case outgoing.ID != nil:
		id = *outgoing.ID
	default:
		id = nextLocalID(c.now().UnixMilli(), snapshot)
	}

	if draft.ID != nil {
		if _, queued := findPending(ops, *draft.ID); queued {
			_ = c.mirror.storePending(ctx, dropPending(ops, *draft.ID))
		}
	}
	if exists {
		if localID != 0 {
			snapshot, _ = without(snapshot, localID)
		}
		_ = c.mirror.replace(ctx, upsert(snapshot, c.mirrorEntry(snapshot, id, draft)))
	}
	return entities.Live(entities.SaveResult{ID: id, Message: env.Message}), nil
}

// send отправляет сохранение. Отрицательный ответ backend считается ошибкой сервера.
func (c *Client) send(ctx context.Context, draft entities.MemoDraft) (rest.Envelope, error) {
	reply, err := c.transport.Do(ctx, OpSave, rest.Call{
		Method: fiber.MethodPost,
		Body:   normalize.MemoPayload(draft),
	})
	if err != nil {
		return rest.Envelope{}, err
	}

	env := reply.Ack()
	if env.Negative() {
		return rest.Envelope{}, entities.NewServerError(OpSave, reply.Status, messageOr(env.Message, MsgRejected))
	}
	return env, nil
}

func (c *Client) saveLocally(ctx context.Context, draft entities.MemoDraft, cause error) (entities.Result[entities.SaveResult], error) {
	snapshot, _ := c.mirror.load(ctx)

	id := nextLocalID(c.now().UnixMilli(), snapshot)
	if draft.ID != nil {
		id = *draft.ID
	}

	entry := c.mirrorEntry(snapshot, id, draft)
	if err := c.mirror.replace(ctx, upsert(snapshot, entry)); err != nil {
		return entities.Result[entities.SaveResult]{}, errors.Join(cause, err)
	}
	if err := c.mirror.storePending(ctx, queueSave(c.mirror.loadPending(ctx), entry, draft.ID == nil)); err != nil {
		return entities.Result[entities.SaveResult]{}, errors.Join(cause, err)
	}

	logger.Log(ctx).Info(ctx, LogSavedLocally, zap.Int64("id", id), zap.Error(cause))
	return entities.Fallback(entities.SaveResult{ID: id, Message: MsgSavedLocally}, entities.SourceMirror, cause), nil
}

// mirrorEntry сохраняет исходную дату создания при обновлении.
func (c *Client) mirrorEntry(snapshot []entities.Memo, id int64, draft entities.MemoDraft) entities.Memo {
	created := formatTime(c.now())
	if prev, ok := find(snapshot, id); ok && prev.CreatedAt != "" {
		created = prev.CreatedAt
	}
	return entities.Memo{ID: id, Title: draft.Title, Content: draft.Content, CreatedAt: created}
}

// Delete удаляет заметку. При сетевом сбое удаляет ее из зеркала, если она там есть,
// и ставит удаление в очередь. Неотправленная offline-запись удаляется без запроса.
func (c *Client) Delete(ctx context.Context, id int64) (entities.Result[entities.Ack], error) {
	ops := c.mirror.loadPending(ctx)
	if _, ok := localOnly(ops, id); ok {
		return c.deleteLocally(ctx, id, ops, nil)
	}

	env, err := c.remove(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTransport) {
			if snapshot, exists := c.mirror.load(ctx); exists {
				if _, found := find(snapshot, id); found {
					return c.deleteLocally(ctx, id, ops, err)
				}
			}
		}
		return entities.Result[entities.Ack]{}, err
	}

	if _, queued := findPending(ops, id); queued {
		_ = c.mirror.storePending(ctx, dropPending(ops, id))
	}
	if snapshot, exists := c.mirror.load(ctx); exists {
		if remaining, removed := without(snapshot, id); removed {
			_ = c.mirror.replace(ctx, remaining)
		}
	}
	return entities.Live(entities.Ack{Message: env.Message}), nil
}

func (c *Client) remove(ctx context.Context, id int64) (rest.Envelope, error) {
	reply, err := c.transport.Do(ctx, OpDelete, rest.Call{Method: fiber.MethodDelete, Path: "/" + strconv.FormatInt(id, 10)})
	if err != nil {
		return rest.Envelope{}, err
	}

	env := reply.Ack()
	if env.Negative() {
		return rest.Envelope{}, entities.NewServerError(OpDelete, reply.Status, messageOr(env.Message, MsgRejected))
	}
	return env, nil
}

func (c *Client) deleteLocally(ctx context.Context, id int64, ops []pendingOp, cause error) (entities.Result[entities.Ack], error) {
	if snapshot, exists := c.mirror.load(ctx); exists {
		remaining, _ := without(snapshot, id)
		if err := c.mirror.replace(ctx, remaining); err != nil {
			return entities.Result[entities.Ack]{}, errors.Join(cause, err)
		}
	}
	if err := c.mirror.storePending(ctx, queueDelete(ops, id)); err != nil {
		return entities.Result[entities.Ack]{}, errors.Join(cause, err)
	}

	logger.Log(ctx).Info(ctx, LogDeletedLocally, zap.Int64("id", id), zap.Error(cause))
	if cause == nil {
		return entities.Fallback(entities.Ack{Message: MsgDiscarded}, entities.SourceMirror, nil), nil
	}
	return entities.Fallback(entities.Ack{Message: MsgDeletedLocally}, entities.SourceMirror, cause), nil
}

// Search ищет по заголовку и тексту. Пустой keyword равносилен List.
func (c *Client) Search(ctx context.Context, keyword string) entities.Result[[]entities.Memo] {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return c.List(ctx)
	}

	memos, err := c.fetchList(ctx, OpSearch, rest.Call{
		Method: fiber.MethodGet,
		Path:   "/search",
		Query:  map[string]string{"keyword": keyword},
	})
	if err != nil {
		base := c.fallbackList(ctx, err)
		base.Value = entities.FilterMemos(base.Value, keyword)
		return base
	}
	return entities.Live(memos)
}

// Stats возвращает сводку. Если /stats недоступен, сводка считается по List.
func (c *Client) Stats(ctx context.Context) entities.Result[entities.MemoStats] {
	reply, err := c.transport.Do(ctx, OpStats, rest.Call{Method: fiber.MethodGet, Path: "/stats"})
	if err == nil {
		env, derr := reply.Envelope(OpStats)
		if obj, ok := env.Item(); derr == nil && !env.Negative() && ok {
			if stats, ok := normalize.MemoStats(obj); ok {
				return entities.Live(stats)
			}
		}
	}

	list := c.List(ctx)
	logger.Log(ctx).Debug(ctx, LogStatsComputed, zap.String("source", string(list.Source)))

	stats := entities.ComputeStats(list.Value)
	if list.IsFallback() {
		return entities.Result[entities.MemoStats]{Value: stats, Source: list.Source, Reason: list.Reason}
	}
	return entities.Live(stats)
}

func (c *Client) fetchList(ctx context.Context, op string, call rest.Call) ([]entities.Memo, error) {
	reply, err := c.transport.Do(ctx, op, call)
	if err != nil {
		return nil, err
	}
	env, err := reply.Envelope(op)
	if err != nil {
		return nil, err
	}
	if env.Negative() {
		return nil, entities.NewServerError(op, reply.Status, messageOr(env.Message, MsgRejected))
	}
	items, ok := env.Items()
	if !ok {
		if env.Content == nil {
			return []entities.Memo{}, nil
		}
		return nil, entities.NewTransportError(op, reply.Status, errors.New(rest.ErrMalformedBody))
	}
	return normalize.Memos(items), nil
}

func (c *Client) fallbackList(ctx context.Context, cause error) entities.Result[[]entities.Memo] {
	log := logger.Log(ctx).With(zap.Error(cause))

	if snapshot, ok := c.mirror.load(ctx); ok {
		log.Warn(ctx, LogFallbackMirror, zap.Int("count", len(snapshot)))
		for i := range snapshot {
			snapshot[i] = c.withTimestamp(snapshot[i])
		}
		return entities.Fallback(snapshot, entities.SourceMirror, cause)
	}

	log.Warn(ctx, LogFallbackPlaceholder)
	return entities.Fallback(placeholderMemos(c.now()), entities.SourcePlaceholder, cause)
}

// withTimestamp подставляет текущее время вместо отсутствующей даты (только offline).
func (c *Client) withTimestamp(m entities.Memo) entities.Memo {
	if m.CreatedAt == "" {
		m.CreatedAt = formatTime(c.now())
	}
	return m
}

// absorbable сообщает, что сбой сохранения можно перевести в локальное зеркало.
func absorbable(err error) bool {
	if errors.Is(err, entities.ErrTransport) {
		return true
	}
	return errors.Is(err, entities.ErrServer) && entities.StatusOf(err) >= http.StatusInternalServerError
}

func savedID(env rest.Envelope) (int64, bool) {
	for _, obj := range []normalize.Object{env.Object, contentObject(env)} {
		if obj == nil {
			continue
		}
		for _, k := range []string{"id", "fid", "FID"} {
			if v, ok := obj[k]; ok {
				if id, ok := normalize.AsInt64(v); ok && id > 0 {
					return id, true
				}
			}
		}
	}
	if id, ok := normalize.AsInt64(env.Content); ok && id > 0 {
		return id, true
	}
	return 0, false
}

func contentObject(env rest.Envelope) normalize.Object {
	obj, _ := env.Item()
	return obj
}

func messageOr(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
