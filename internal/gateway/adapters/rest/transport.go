// Package rest реализует HTTP транспорт к REST backend поверх клиента fiber.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"memoboard/internal/gateway/domain/entities"
	"memoboard/internal/gateway/resilience"
	"memoboard/pkg/logger"
)

// Константы для логирования.
const (
	LogRequestFailed  = "backend request failed"
	LogRequestDone    = "backend request completed"
	LogUnexpectedBody = "backend returned malformed body"
)

// Сообщения ошибок транспорта.
const (
	ErrMalformedBody = "malformed response body"
)

// Call описывает один запрос к backend.
type Call struct {
	Method string
	// Path добавляется к базовому URL, например "/search" или "/42".
	Path  string
	Query map[string]string
	// Body кодируется в JSON, если не nil.
	Body any
}

// Reply - успешный (2xx) ответ backend.
type Reply struct {
	Status int
	Body   []byte
}

// Envelope разбирает тело ответа. Некорректный JSON считается ошибкой транспорта.
func (r *Reply) Envelope(op string) (Envelope, error) {
	env, err := DecodeEnvelope(r.Body)
	if err != nil {
		return Envelope{}, entities.NewTransportError(op, r.Status, fmt.Errorf("%s: %w", ErrMalformedBody, err))
	}
	return env, nil
}

// Config содержит настройки транспорта.
type Config struct {
	// Name идентифицирует backend в логах и Circuit Breaker.
	Name string
	// BaseURL - полный путь ресурса, например http://localhost:9999/api/memos.
	BaseURL string
	// Timeout ограничивает одну попытку запроса. 0 - без ограничения.
	Timeout time.Duration
	// Credentialed включает хранение cookie между запросами.
	Credentialed bool
	Resilience   resilience.Config
}

// Transport выполняет запросы к одному ресурсу backend.
type Transport struct {
	name       string
	client     *client.Client
	resilience *resilience.ServiceResilience
}

// NewTransport создает транспорт. Повторяются и учитываются Circuit Breaker
// только сетевые сбои, ответы backend с любым статусом отказом не считаются.
func NewTransport(cfg Config) *Transport {
	c := client.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	if cfg.Credentialed {
		c.SetCookieJar(client.AcquireCookieJar())
	}

	res := cfg.Resilience
	res.Retry.ShouldRetry = isRetryable
	res.Breaker.IsFailure = isNetworkFailure

	return &Transport{
		name:       cfg.Name,
		client:     c,
		resilience: resilience.NewServiceResilience(cfg.Name, res),
	}
}

func isNetworkFailure(err error) bool {
	return errors.Is(err, errNetwork)
}

func isRetryable(err error) bool {
	return isNetworkFailure(err) && !errors.Is(err, context.Canceled)
}

// errNetwork помечает ошибки отправки, в отличие от ответов backend.
var errNetwork = errors.New("network error")

// Do выполняет запрос. Ответ не из диапазона 2xx превращается в ошибку:
// 404 - ErrNotFound, статус с сообщением - ErrServer, иначе ErrTransport.
func (t *Transport) Do(ctx context.Context, op string, call Call) (*Reply, error) {
	log := logger.Log(ctx).With(
		zap.String("backend", t.name),
		zap.String("operation", op),
		zap.String("method", call.Method),
		zap.String("path", call.Path),
	)
	started := time.Now()

	var reply *Reply
	send := func() error {
		var err error
		reply, err = t.send(ctx, call)
		return err
	}

	var err error
	if call.Method == fiber.MethodPost {
		err = t.resilience.ExecuteOnce(ctx, op, send)
	} else {
		err = t.resilience.Execute(ctx, op, send)
	}
	if err != nil {
		log.Warn(ctx, LogRequestFailed, zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return nil, entities.NewTransportError(op, 0, err)
	}

	log.Debug(ctx, LogRequestDone, zap.Int("status", reply.Status), zap.Duration("elapsed", time.Since(started)))

	if err := classify(op, reply); err != nil {
		log.Warn(ctx, LogRequestFailed, zap.Int("status", reply.Status), zap.Error(err))
		return nil, err
	}
	return reply, nil
}

func (t *Transport) send(ctx context.Context, call Call) (*Reply, error) {
	req := t.client.R().SetContext(ctx)
	for k, v := range call.Query {
		req.SetParam(k, v)
	}
	if call.Body != nil {
		req.SetJSON(call.Body)
	}

	resp, err := req.Custom(call.Path, call.Method)
	if err != nil {
		client.ReleaseRequest(req)
		return nil, fmt.Errorf("%w: %w", errNetwork, err)
	}
	defer resp.Close()

	return &Reply{
		Status: resp.StatusCode(),
		Body:   append([]byte(nil), resp.Body()...),
	}, nil
}

// classify переводит статус ответа в категорию ошибки.
func classify(op string, reply *Reply) error {
	if reply.Status >= 200 && reply.Status < 300 {
		return nil
	}

	var message string
	if v, err := DecodeJSON(reply.Body); err == nil {
		if env := envelopeOf(v); env.Object != nil {
			message = env.Message
		}
	}

	switch {
	case reply.Status == http.StatusNotFound:
		return entities.NewNotFoundError(op, message)
	case message != "":
		return entities.NewServerError(op, reply.Status, message)
	default:
		return entities.NewTransportError(op, reply.Status, errors.New(http.StatusText(reply.Status)))
	}
}

// Ack разбирает ответ на запись. Тело не в формате JSON считается текстом сообщения.
func (r *Reply) Ack() Envelope {
	env, err := DecodeEnvelope(r.Body)
	if err != nil {
		return Envelope{Message: strings.TrimSpace(string(r.Body))}
	}
	if s, ok := env.Content.(string); ok && env.Message == "" {
		env.Message = s
	}
	return env
}
