// Package config загружает конфигурацию сервисов из переменных окружения
// и необязательных .env файлов.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"memoboard/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileSkipped       = "env file not found, skipping"

	errFailedLoadEnvFile       = "failed to load env file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из окружения. Файлы envFiles подгружаются через godotenv
// до чтения окружения; отсутствующие файлы пропускаются, уже заданные
// переменные окружения не перезаписываются.
func Load[T any](ctx context.Context, serviceName string, envFiles ...string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrService, serviceName))

	for _, path := range envFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Debug(ctx, msgEnvFileSkipped, zap.String(attrPath, path))
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Error(ctx, errFailedLoadEnvFile, zap.String(attrPath, path), zap.Error(err))
			return nil, fmt.Errorf("%s %s: %w", errFailedLoadEnvFile, path, err)
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.String(attrService, serviceName), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}
