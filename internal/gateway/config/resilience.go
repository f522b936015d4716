package config

import (
	"time"

	"memoboard/internal/gateway/resilience"
)

// ResilienceConfig задает повторы и Circuit Breaker для вызовов backend.
type ResilienceConfig struct {
	RetryMaxAttempts        int           `yaml:"retry_max_attempts" env:"GATEWAY_RETRY_MAX_ATTEMPTS" env-default:"3"`
	RetryInitialBackoff     time.Duration `yaml:"retry_initial_backoff" env:"GATEWAY_RETRY_INITIAL_BACKOFF" env-default:"100ms"`
	RetryMaxBackoff         time.Duration `yaml:"retry_max_backoff" env:"GATEWAY_RETRY_MAX_BACKOFF" env-default:"1s"`
	RetryBackoffFactor      float64       `yaml:"retry_backoff_factor" env:"GATEWAY_RETRY_BACKOFF_FACTOR" env-default:"2"`
	BreakerErrorThreshold   int           `yaml:"breaker_error_threshold" env:"GATEWAY_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout" env:"GATEWAY_BREAKER_TIMEOUT" env-default:"10s"`
	BreakerSuccessThreshold int           `yaml:"breaker_success_threshold" env:"GATEWAY_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
}

// Resilience переводит настройки в конфигурацию пакета resilience.
func (c *ResilienceConfig) Resilience() resilience.Config {
	return resilience.Config{
		Retry: resilience.RetryConfig{
			MaxAttempts:    c.RetryMaxAttempts,
			InitialBackoff: c.RetryInitialBackoff,
			MaxBackoff:     c.RetryMaxBackoff,
			BackoffFactor:  c.RetryBackoffFactor,
		},
		Breaker: resilience.CircuitBreakerConfig{
			ErrorThreshold:   c.BreakerErrorThreshold,
			Timeout:          c.BreakerTimeout,
			SuccessThreshold: c.BreakerSuccessThreshold,
		},
	}
}
