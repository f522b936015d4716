// Package config содержит конфигурацию gateway.
package config

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	pkgconfig "memoboard/pkg/config"
	"memoboard/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "gateway"
	LogConfigLoaded     = "gateway configuration loaded"
	ErrFailedLoadConfig = "failed to load gateway configuration"
	ErrInvalidConfig    = "invalid gateway configuration"
)

// Config представляет полную конфигурацию gateway.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Backend    BackendConfig    `yaml:"backend"`
	Mirror     MirrorConfig     `yaml:"mirror"`
	Redis      RedisConfig      `yaml:"redis"`
	Resilience ResilienceConfig `yaml:"resilience"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию из окружения и необязательных .env файлов.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("backend_origin", cfg.Backend.Origin),
		zap.Duration("backend_timeout", cfg.Backend.RequestTimeout),
		zap.String("mirror_driver", cfg.Mirror.Driver),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv не проверяет сам.
func (c *Config) Validate() error {
	if !slices.Contains(MirrorDrivers, c.Mirror.Driver) {
		return fmt.Errorf("%s: unknown mirror driver %q", ErrInvalidConfig, c.Mirror.Driver)
	}
	if c.Mirror.Driver == MirrorSQLite && c.Mirror.SQLitePath == "" {
		return fmt.Errorf("%s: sqlite mirror requires a path", ErrInvalidConfig)
	}
	if c.Backend.Origin == "" {
		return fmt.Errorf("%s: backend origin is empty", ErrInvalidConfig)
	}
	return nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
