package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"yodel.app/insight/common/id"
	"yodel.app/insight/common/logger"
	"yodel.app/insight/common/otel"
	"yodel.app/insight/core/config"
	"yodel.app/insight/internal/engine"
	"yodel.app/insight/internal/http/middleware"
	httprouter "yodel.app/insight/internal/http/router"
	"yodel.app/insight/internal/provider"
	"yodel.app/insight/internal/service"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "insight starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	ranking, popularity, closeCache, err := setupProviders(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up providers", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	analysisEngine, err := engine.New(engine.Config{
		MinLength:        cfg.Engine.MinLength,
		MaxLength:        cfg.Engine.MaxLength,
		SelectionBudget:  cfg.Engine.SelectionBudget,
		MaxInputKeywords: cfg.Engine.MaxInputKeywords,
	}, ranking, popularity, slog.Default())
	if err != nil {
		slog.ErrorContext(ctx, "invalid engine configuration", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(analysisEngine)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupProviders builds the external signal clients: HTTP clients for
// whichever services are configured, wrapped in redis caches when a cache
// is configured. Unconfigured providers stay nil and the engine scores
// with neutral defaults.
func setupProviders(ctx context.Context, cfg config.Config) (provider.RankingProvider, provider.PopularityProvider, func(), error) {
	var ranking provider.RankingProvider
	var popularity provider.PopularityProvider

	if cfg.Ranking.Enabled() {
		ranking = provider.NewHTTPRanking(provider.HTTPRankingConfig{
			BaseURL: cfg.Ranking.BaseURL,
			APIKey:  cfg.Ranking.APIKey,
		}, &http.Client{Timeout: cfg.Ranking.Timeout})
	}
	if cfg.Popularity.Enabled() {
		popularity = provider.NewHTTPPopularity(provider.HTTPPopularityConfig{
			BaseURL: cfg.Popularity.BaseURL,
			APIKey:  cfg.Popularity.APIKey,
		}, &http.Client{Timeout: cfg.Popularity.Timeout})
	}

	closeCache := func() {}
	if cfg.Cache.Enabled() && (ranking != nil || popularity != nil) {
		redisOpts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		slog.InfoContext(ctx, "redis signal cache connected", "ttl", cfg.Cache.TTL)
		closeCache = func() { _ = redisClient.Close() }

		if ranking != nil {
			ranking = provider.NewCachedRanking(ranking, redisClient, cfg.Cache.TTL, slog.Default())
		}
		if popularity != nil {
			popularity = provider.NewCachedPopularity(popularity, redisClient, cfg.Cache.TTL, slog.Default())
		}
	}

	return ranking, popularity, closeCache, nil
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		IsProduction: cfg.IsProduction(),
	})

	return router
}

const banner = `
██╗███╗   ██╗███████╗██╗ ██████╗ ██╗  ██╗████████╗
██║████╗  ██║██╔════╝██║██╔════╝ ██║  ██║╚══██╔══╝
██║██╔██╗ ██║███████╗██║██║  ███╗███████║   ██║
██║██║╚██╗██║╚════██║██║██║   ██║██╔══██║   ██║
██║██║ ╚████║███████║██║╚██████╔╝██║  ██║   ██║
╚═╝╚═╝  ╚═══╝╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝
`
