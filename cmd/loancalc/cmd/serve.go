package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-amortization-go/internal/cache"
	"github.com/cloud-ru/loan-amortization-go/internal/server"
	"github.com/cloud-ru/loan-amortization-go/internal/tools"
	"github.com/cloud-ru/loan-amortization-go/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запускает HTTP сервер инструментов",
	Long: `Запускает HTTP сервер:
  GET  /tools         - список инструментов
  POST /tools/{name}  - вызов инструмента с JSON параметрами
  GET  /metrics       - метрики Prometheus
  GET  /healthz       - проверка состояния

Кэш результатов хранится в Redis, если задан REDIS_ADDR, иначе в памяти.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, appConfig.OTELServiceName, appConfig.OTELEndpoint)
	if err != nil {
		printError("трейсинг", err)
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", "error", err)
		}
	}()

	var resultCache cache.Cache = cache.NewMemory(appConfig.CacheTTL, appConfig.CacheSize)
	if appConfig.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, appConfig.RedisAddr, appConfig.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory cache", "addr", appConfig.RedisAddr, "error", err)
		} else {
			defer rc.Close()
			resultCache = rc
		}
	}

	registry := tools.NewRegistry(appConfig, tracer, resultCache)
	limiter := server.NewRateLimiter(appConfig.RateLimit, appConfig.RateLimitWindow)

	srv := server.New(appConfig.Addr(), registry, limiter, logger)
	if err := srv.Run(ctx); err != nil {
		printError("сервер", err)
		return err
	}
	logger.Info("server exited")
	return nil
}
