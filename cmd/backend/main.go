// Package main реализует точку входа dev backend заметок и досок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	backendhttp "memoboard/internal/backend/adapters/http"
	"memoboard/internal/backend/adapters/postgres"
	"memoboard/internal/backend/app"
	"memoboard/internal/backend/config"
	pgdb "memoboard/pkg/db/postgres"
	"memoboard/pkg/logger"
	"memoboard/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BACKEND_LOGGER_MODE"
	EnvLoggerLevel = "BACKEND_LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrMigrate              = "failed to apply migrations"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "backend service started"
	LogServiceShutdownDone = "backend service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogStoppingHTTP        = "stopping HTTP server"
	LogMigrationsSkipped   = "migrations disabled"
	LogInitRepo            = "initializing repositories"
	LogInitUseCases        = "initializing use cases"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, EnvFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		if cfg.Migrations.Disable {
			log.Info(ctx, LogMigrationsSkipped)
		} else {
			source, err := cfg.Migrations.SourceURL()
			if err == nil {
				err = pgdb.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), source)
			}
			if err != nil {
				log.Error(ctx, ErrMigrate, zap.Error(err))
				exitCode = 1
				return
			}
		}

		database, err := pgdb.New(ctx, pgdb.Config{
			DSN:      cfg.Postgres.GetDSN(),
			MinConns: cfg.Postgres.MinConn,
			MaxConns: cfg.Postgres.MaxConn,
		})
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		repos := postgres.NewRepositoryFactory(database.Pool())

		log.Info(ctx, LogInitUseCases)
		memoUseCase := app.NewMemoUseCase(repos.MemoRepository())
		boardUseCase := app.NewBoardUseCase(repos.BoardRepository())

		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		backendhttp.SetupRouter(server, memoUseCase, boardUseCase, log)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := server.ShutdownWithContext(ctx)

				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return httpErr
			},
		)
		if err != nil {
			log.Warn(ctx, ErrShutdown, zap.Error(err))
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
