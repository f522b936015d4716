// Package config содержит конфигурацию dev backend.
package config

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	pkgconfig "memoboard/pkg/config"
	"memoboard/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "backend"
	LogConfigLoaded     = "backend configuration loaded"
	ErrFailedLoadConfig = "failed to load backend configuration"
	ErrMigrationsPath   = "failed to resolve migrations path"
)

// Config представляет полную конфигурацию backend.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// HTTPConfig - адрес HTTP сервера backend.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"BACKEND_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"BACKEND_HTTP_PORT" env-default:"9999"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"BACKEND_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"BACKEND_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"BACKEND_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"BACKEND_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"BACKEND_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"BACKEND_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"BACKEND_POSTGRES_DB" env-default:"memoboard"`
	MinConn  int32  `yaml:"min_conn" env:"BACKEND_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int32  `yaml:"max_conn" env:"BACKEND_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// MigrationsConfig - каталог миграций схемы.
type MigrationsConfig struct {
	Dir     string `yaml:"dir" env:"BACKEND_MIGRATIONS_DIR" env-default:"migrations/backend"`
	Disable bool   `yaml:"disable" env:"BACKEND_MIGRATIONS_DISABLE" env-default:"false"`
}

// SourceURL возвращает file:// URL каталога миграций.
func (m *MigrationsConfig) SourceURL() (string, error) {
	if filepath.IsAbs(m.Dir) {
		return "file://" + m.Dir, nil
	}
	abs, err := filepath.Abs(m.Dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMigrationsPath, err)
	}
	return "file://" + abs, nil
}

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"BACKEND_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"BACKEND_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment получает строку режима в logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig представляет конфигурацию корректного завершения работы.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"BACKEND_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут завершения.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("migrations_dir", cfg.Migrations.Dir),
		zap.String("log_level", cfg.Logging.Level),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
