package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"emotion-detector-go/config"
	"emotion-detector-go/internal/cache"
	"emotion-detector-go/internal/fetcher"
	"emotion-detector-go/internal/handler"
	"emotion-detector-go/internal/logging"
	"emotion-detector-go/internal/service"
)

func main() {
	// 加载 .env 文件（如果存在）
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New("emotion-detector", cfg.Environment, cfg.LogLevel, os.Stdout)
	defer logger.Sync()

	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emotionCache := newCache(ctx, cfg, logger)
	go cache.RunCleanup(ctx, emotionCache, cfg.CleanInterval, logger)

	detector := newDetector(cfg, logger)
	emotionService := service.NewEmotionService(detector, emotionCache, cfg.CacheTTL, logger)

	emotionHandler, err := handler.NewEmotionHandler(emotionService, logger)
	if err != nil {
		logger.Fatal("failed to create handler", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := handler.NewMetrics(reg)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(emotionHandler, metrics, cfg.StaticDir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
		if err := cache.Close(emotionCache); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// newDetector 选择情绪检测后端，openrouter 需要 OPENROUTER_API_KEY
func newDetector(cfg *config.Config, logger *zap.Logger) fetcher.EmotionDetector {
	if cfg.Backend == "openrouter" {
		if cfg.OpenRouterKey == "" {
			logger.Warn("OPENROUTER_API_KEY not configured, falling back to Watson")
		} else {
			logger.Info("Using OpenRouter emotion backend")
			return fetcher.NewOpenRouterClient(cfg.OpenRouterKey, cfg.OpenRouterModel, cfg.WatsonTimeout)
		}
	}
	if cfg.WatsonURL == "" {
		logger.Info("WATSON_URL not configured, using default endpoint", zap.String("url", fetcher.DefaultWatsonURL))
	}
	return fetcher.NewWatsonClient(cfg.WatsonURL, cfg.WatsonModelID, cfg.WatsonTimeout)
}

// newCache 按配置选择缓存：PostgreSQL > Redis > 文件 > 内存，连接失败时退回内存缓存
func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) cache.Cache {
	switch {
	case cfg.DatabaseURL != "":
		pg, err := cache.NewPostgresCache(ctx, cfg.DatabaseURL)
		if err == nil {
			logger.Info("Using PostgreSQL cache")
			return pg
		}
		logger.Warn("Failed to connect to PostgreSQL, using memory cache", zap.Error(err))
	case cfg.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err == nil {
			logger.Info("Using Redis cache")
			return rc
		}
		logger.Warn("Failed to connect to Redis, using memory cache", zap.Error(err))
	case cfg.CacheDir != "":
		fc, err := cache.NewFileCache(cfg.CacheDir)
		if err == nil {
			logger.Info("Using file cache", zap.String("dir", cfg.CacheDir))
			return fc
		}
		logger.Warn("Failed to create file cache, using memory cache", zap.Error(err))
	default:
		logger.Info("No cache backend configured, using memory cache")
	}
	return cache.NewMemoryCache()
}
