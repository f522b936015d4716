// Package boards реализует клиент ресурса досок.
// Ошибки чтения списков превращаются в пустые страницы, ошибки записи и чтения
// отдельной записи возвращаются вызывающему: локального зеркала у досок нет.
package boards

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"memoboard/internal/gateway/adapters/rest"
	"memoboard/internal/gateway/domain/entities"
	"memoboard/internal/gateway/domain/normalize"
	"memoboard/internal/gateway/ports/clients"
	"memoboard/pkg/logger"
)

// Названия операций.
const (
	OpInfo   = "board info"
	OpList   = "list posts"
	OpSearch = "search posts"
	OpDetail = "post detail"
	OpCreate = "create post"
	OpUpdate = "update post"
	OpDelete = "delete post"
)

// Константы для логирования.
const (
	LogInfoPlaceholder = "serving placeholder board info"
	LogEmptyPage       = "serving empty page"
)

// DefaultAuthor подставляется, если автор записи не указан.
const DefaultAuthor = "anonymous"

const msgRejected = "request rejected by server"

// Client - клиент /api/board.
type Client struct {
	transport     *rest.Transport
	defaultAuthor string
}

var _ clients.BoardClient = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithDefaultAuthor задает автора для записей без автора.
func WithDefaultAuthor(author string) Option {
	return func(c *Client) {
		if strings.TrimSpace(author) != "" {
			c.defaultAuthor = author
		}
	}
}

// New создает клиент.
func New(transport *rest.Transport, opts ...Option) *Client {
	c := &Client{transport: transport, defaultAuthor: DefaultAuthor}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BoardInfo возвращает метаданные доски, при сбое - заглушку.
func (c *Client) BoardInfo(ctx context.Context, code string) entities.Result[entities.BoardInfo] {
	info, err := c.fetchInfo(ctx, code)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogInfoPlaceholder, zap.String("board", code), zap.Error(err))
		return entities.Fallback(entities.PlaceholderBoardInfo(code), entities.SourcePlaceholder, err)
	}
	return entities.Live(info)
}

func (c *Client) fetchInfo(ctx context.Context, code string) (entities.BoardInfo, error) {
	reply, err := c.transport.Do(ctx, OpInfo, rest.Call{
		Method: fiber.MethodGet,
		Path:   "/info",
		Query:  map[string]string{"brCd": code},
	})
	if err != nil {
		return entities.BoardInfo{}, err
	}
	env, err := reply.Envelope(OpInfo)
	if err != nil {
		return entities.BoardInfo{}, err
	}
	if env.Negative() {
		return entities.BoardInfo{}, entities.NewServerError(OpInfo, reply.Status, messageOr(env.Message))
	}
	obj, ok := env.Item()
	if !ok {
		return entities.BoardInfo{}, entities.NewTransportError(OpInfo, reply.Status, errors.New(rest.ErrMalformedBody))
	}
	return normalize.BoardInfo(obj, code), nil
}

// ListPosts возвращает страницу записей доски.
func (c *Client) ListPosts(ctx context.Context, code string, page, size int) entities.Result[entities.Page[entities.Post]] {
	page, size = entities.NormalizePaging(page, size)
	return c.fetchPage(ctx, OpList, code, page, size, rest.Call{
		Method: fiber.MethodGet,
		Path:   "/posts",
		Query:  pageQuery(code, page, size),
	})
}

// SearchPosts ищет записи доски. Пустой keyword равносилен ListPosts.
func (c *Client) SearchPosts(ctx context.Context, code, keyword string, page, size int) entities.Result[entities.Page[entities.Post]] {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return c.ListPosts(ctx, code, page, size)
	}

	page, size = entities.NormalizePaging(page, size)
	query := pageQuery(code, page, size)
	query["keyword"] = keyword
	return c.fetchPage(ctx, OpSearch, code, page, size, rest.Call{
		Method: fiber.MethodGet,
		Path:   "/search",
		Query:  query,
	})
}

func pageQuery(code string, page, size int) map[string]string {
	return map[string]string{
		"brCd": code,
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}
}

func (c *Client) fetchPage(
	ctx context.Context,
	op, code string,
	page, size int,
	call rest.Call,
) entities.Result[entities.Page[entities.Post]] {
	result, err := c.decodePage(ctx, op, code, page, size, call)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogEmptyPage,
			zap.String("operation", op), zap.String("board", code), zap.Int("page", page), zap.Error(err))
		return entities.Fallback(entities.EmptyPage[entities.Post](page), entities.SourcePlaceholder, err)
	}
	return entities.Live(result)
}

func (c *Client) decodePage(
	ctx context.Context,
	op, code string,
	page, size int,
	call rest.Call,
) (entities.Page[entities.Post], error) {
	reply, err := c.transport.Do(ctx, op, call)
	if err != nil {
		return entities.Page[entities.Post]{}, err
	}
	env, err := reply.Envelope(op)
	if err != nil {
		return entities.Page[entities.Post]{}, err
	}
	if env.Negative() {
		return entities.Page[entities.Post]{}, entities.NewServerError(op, reply.Status, messageOr(env.Message))
	}

	items, ok := env.Items()
	if !ok {
		if env.Content == nil {
			return entities.EmptyPage[entities.Post](page), nil
		}
		return entities.Page[entities.Post]{}, entities.NewTransportError(op, reply.Status, errors.New(rest.ErrMalformedBody))
	}
	posts := normalize.Posts(items, code)

	// Голый массив - весь список, страница режется локально.
	if env.Object == nil {
		return entities.Paginate(posts, page, size), nil
	}
	return pageFromEnvelope(env.Object, posts, page, size), nil
}

// pageFromEnvelope берет счетчики страниц из ответа, недостающие выводит.
func pageFromEnvelope(obj normalize.Object, posts []entities.Post, page, size int) entities.Page[entities.Post] {
	out := entities.Page[entities.Post]{Items: posts, CurrentPage: page}

	if v, ok := obj["currentPage"]; ok {
		if n, ok := normalize.AsInt64(v); ok && n > 0 {
			out.CurrentPage = int(n)
		}
	}
	for _, k := range []string{"totalElements", "totalCount", "total"} {
		if n, ok := normalize.AsInt64(obj[k]); ok && n >= 0 {
			out.TotalElements = n
			break
		}
	}

	if n, ok := normalize.AsInt64(obj["totalPages"]); ok && n >= 0 {
		out.TotalPages = int(n)
	} else if out.TotalElements > 0 {
		out.TotalPages = entities.TotalPages(out.TotalElements, size)
	} else if len(posts) > 0 {
		out.TotalPages = out.CurrentPage
	}
	return out
}

// PostDetail возвращает запись. 404 или success:false - ErrNotFound.
func (c *Client) PostDetail(ctx context.Context, seq int64) (entities.Post, error) {
	reply, err := c.transport.Do(ctx, OpDetail, rest.Call{Method: fiber.MethodGet, Path: "/detail/" + strconv.FormatInt(seq, 10)})
	if err != nil {
		return entities.Post{}, err
	}
	env, err := reply.Envelope(OpDetail)
	if err != nil {
		return entities.Post{}, err
	}
	obj, ok := env.Item()
	if env.Negative() || !ok || len(obj) == 0 {
		return entities.Post{}, entities.NewNotFoundError(OpDetail, env.Message)
	}

	post := normalize.Post(obj, "")
	if post.SequenceID == 0 {
		post.SequenceID = seq
	}
	return post, nil
}

// CreatePost создает запись. Ошибки не поглощаются.
func (c *Client) CreatePost(ctx context.Context, draft entities.PostDraft) (entities.WriteResult, error) {
	if strings.TrimSpace(draft.Author) == "" {
		draft.Author = c.defaultAuthor
	}
	if err := draft.Validate(); err != nil {
		return entities.WriteResult{}, err
	}

	reply, err := c.transport.Do(ctx, OpCreate, rest.Call{
		Method: fiber.MethodPost,
		Path:   "/write",
		Body:   normalize.PostPayload(draft),
	})
	if err != nil {
		return entities.WriteResult{}, err
	}
	return writeResult(OpCreate, reply)
}

// UpdatePost изменяет заголовок и текст записи.
func (c *Client) UpdatePost(ctx context.Context, seq int64, update entities.PostUpdate) (entities.WriteResult, error) {
	if err := update.Validate(); err != nil {
		return entities.WriteResult{}, err
	}

	reply, err := c.transport.Do(ctx, OpUpdate, rest.Call{
		Method: fiber.MethodPut,
		Path:   "/update/" + strconv.FormatInt(seq, 10),
		Body:   normalize.PostUpdatePayload(update),
	})
	if err != nil {
		return entities.WriteResult{}, err
	}
	return writeResult(OpUpdate, reply)
}

// DeletePost удаляет запись.
func (c *Client) DeletePost(ctx context.Context, seq int64) (entities.WriteResult, error) {
	reply, err := c.transport.Do(ctx, OpDelete, rest.Call{Method: fiber.MethodDelete, Path: "/delete/" + strconv.FormatInt(seq, 10)})
	if err != nil {
		return entities.WriteResult{}, err
	}
	return writeResult(OpDelete, reply)
}

// writeResult разбирает ответ на запись. success:false при 2xx - ErrServer.
func writeResult(op string, reply *rest.Reply) (entities.WriteResult, error) {
	env := reply.Ack()
	if env.Negative() {
		return entities.WriteResult{}, entities.NewServerError(op, reply.Status, messageOr(env.Message))
	}

	result := entities.WriteResult{Success: true, Message: env.Message}
	if env.Object != nil {
		for _, k := range []string{"id", "br_pid", "seq"} {
			if id, ok := normalize.AsInt64(env.Object[k]); ok && id > 0 {
				result.ID = &id
				break
			}
		}
	}
	return result, nil
}

func messageOr(msg string) string {
	if msg != "" {
		return msg
	}
	return msgRejected
}
