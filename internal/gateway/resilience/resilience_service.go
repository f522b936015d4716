package resilience

import (
	"context"

	"memoboard/pkg/logger"

	"go.uber.org/zap"
)

// LogExecuteOperation - сообщение о начале защищенного вызова.
const LogExecuteOperation = "executing operation with resilience"

// Config объединяет настройки retry и Circuit Breaker.
type Config struct {
	Retry   RetryConfig
	Breaker CircuitBreakerConfig
}

// DefaultConfig возвращает настройки по умолчанию.
func DefaultConfig() Config {
	return Config{Retry: DefaultRetryConfig(), Breaker: DefaultCircuitBreakerConfig()}
}

// ServiceResilience обеспечивает отказоустойчивость вызовов одного backend.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cfg Config) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cfg.Breaker),
		retry:          NewRetry(serviceName, cfg.Retry),
	}
}

// Execute выполняет операцию: повторы внутри, Circuit Breaker снаружи.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	).Debug(ctx, LogExecuteOperation)

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// ExecuteOnce выполняет операцию без повторов, только под Circuit Breaker.
// Используется для неидемпотентных запросов.
func (r *ServiceResilience) ExecuteOnce(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	).Debug(ctx, LogExecuteOperation)

	return r.circuitBreaker.Execute(ctx, operation)
}

// State возвращает состояние Circuit Breaker сервиса.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// ExecuteWithResult выполняет операцию с результатом под защитой r.
func ExecuteWithResult[T any](
	ctx context.Context,
	r *ServiceResilience,
	operationName string,
	operation func() (T, error),
) (T, error) {
	var result T
	err := r.Execute(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
