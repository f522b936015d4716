package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpServer "memoboard/internal/gateway/adapters/http"
	"memoboard/internal/gateway/adapters/mirror"
	"memoboard/internal/gateway/adapters/rest"
	"memoboard/internal/gateway/adapters/rest/boards"
	"memoboard/internal/gateway/adapters/rest/memos"
	"memoboard/internal/gateway/catalog"
	"memoboard/internal/gateway/config"
	"memoboard/pkg/logger"
	"memoboard/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "GATEWAY_LOGGER_MODE"
	EnvLoggerLevel = "GATEWAY_LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenMirror           = "failed to open mirror store"
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
	LogServiceStarted      = "gateway service started"
	LogServiceShutdownDone = "gateway service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingMirror       = "closing mirror store"
	LogInitMirror          = "initializing mirror store"
	LogInitClients         = "initializing backend clients"
	LogInitHTTPServer      = "initializing HTTP server"
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

		log.Info(ctx, LogInitMirror, zap.String("driver", cfg.Mirror.Driver))
		store, err := mirror.Open(ctx, mirror.Options{
			Driver:      cfg.Mirror.Driver,
			SQLitePath:  cfg.Mirror.SQLitePath,
			RedisPrefix: cfg.Mirror.RedisPrefix,
			RedisTTL:    cfg.Mirror.RedisTTL,
			Redis:       cfg.Redis.ClientConfig(),
		})
		if err != nil {
			log.Error(ctx, ErrOpenMirror, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitClients,
			zap.String("memos_url", cfg.Backend.MemosURL()),
			zap.String("board_url", cfg.Backend.BoardURL()))
		resilienceCfg := cfg.Resilience.Resilience()
		memoClient := memos.New(rest.NewTransport(rest.Config{
			Name:       "memos",
			BaseURL:    cfg.Backend.MemosURL(),
			Timeout:    cfg.Backend.RequestTimeout,
			Resilience: resilienceCfg,
		}), store, memos.WithMirrorKey(cfg.Mirror.Key))
		boardClient := boards.New(rest.NewTransport(rest.Config{
			Name:         "boards",
			BaseURL:      cfg.Backend.BoardURL(),
			Timeout:      cfg.Backend.RequestTimeout,
			Credentialed: cfg.Backend.Credentialed,
			Resilience:   resilienceCfg,
		}), boards.WithDefaultAuthor(cfg.Backend.DefaultAuthor))

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, httpServer.Deps{
			Memos:       memoClient,
			Boards:      boardClient,
			Catalog:     catalog.Default(),
			Logger:      log,
			CORSOrigins: cfg.HTTP.CORSOrigins,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Зеркало закрывается только после остановки HTTP сервера.
		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := app.ShutdownWithContext(ctx)

				log.Info(ctx, LogClosingMirror)
				if err := store.Close(); err != nil {
					return err
				}
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
