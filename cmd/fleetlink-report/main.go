package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetlink-report/internal/config"
	"fleetlink-report/internal/database"
	httpapi "fleetlink-report/internal/http"
	"fleetlink-report/internal/logger"
	"fleetlink-report/internal/ratelimit"
	"fleetlink-report/internal/repository"
	"fleetlink-report/internal/risk"
	"fleetlink-report/internal/service"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "fleetlink-report")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.TokenPepper == "" {
		// 服务照常启动但所有公开提交都会 500：配置问题必须显式修复，
		// 绝不能退化成不校验 token
		log.Error("TOKEN_PEPPER is not configured: all public submission requests will fail")
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// 限流后端：默认进程内固定窗口；多实例部署可切 Redis 共享计数
	var limiter ratelimit.Limiter
	var redisClient *redis.Client
	switch cfg.RateLimit.Backend {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(redisClient)
		log.Info("Rate limiting backed by Redis", zap.String("addr", cfg.Redis.Addr))
	default:
		mem := ratelimit.NewMemoryLimiter()
		mem.StartJanitor(cfg.RateLimit.SweepInterval)
		defer mem.Stop()
		limiter = mem
		log.Info("Rate limiting backed by in-process memory (not shared across instances)")
	}

	var notifier service.Notifier
	if cfg.AlertWebhookURL != "" {
		notifier = service.NewWebhookNotifier(cfg.AlertWebhookURL, log)
		log.Info("High risk alert webhook enabled")
	}

	linksRepo := repository.NewPostgresLinksRepo(db)
	reportsRepo := repository.NewPostgresReportsRepo(db)
	driversRepo := repository.NewPostgresDriversRepo(db)
	vehiclesRepo := repository.NewPostgresVehiclesRepo(db)

	submissions := service.NewSubmissionService(
		linksRepo,
		reportsRepo,
		driversRepo,
		vehiclesRepo,
		limiter,
		risk.NewRuleClassifier(),
		notifier,
		cfg.TokenPepper,
		cfg.RateLimit,
		log,
	)

	router := httpapi.NewRouter(log)
	router.RegisterPublicReportRoutes(httpapi.NewPublicReportHandler(submissions, log))
	router.RegisterHealthRoutes()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
