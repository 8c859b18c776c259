package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Javets70/url-shortner-backend/internal/auth"
	"github.com/Javets70/url-shortner-backend/internal/config"
	"github.com/Javets70/url-shortner-backend/internal/events"
	"github.com/Javets70/url-shortner-backend/internal/handler"
	"github.com/Javets70/url-shortner-backend/internal/logger"
	"github.com/Javets70/url-shortner-backend/internal/middleware"
	"github.com/Javets70/url-shortner-backend/internal/ratelimit"
	"github.com/Javets70/url-shortner-backend/internal/repository/postgres"
	redisrepo "github.com/Javets70/url-shortner-backend/internal/repository/redis"
	"github.com/Javets70/url-shortner-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Initialize(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logg := logger.Get()
	logg.Info("Starting URL shortener service",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	if err := postgres.RunMigrations(cfg.Database.URL, logg); err != nil {
		logg.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		logg.Error("Failed to setup database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := setupRedis(cfg)
	if err != nil {
		logg.Error("Failed to setup redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	urlRepo := postgres.NewURLRepository(dbPool)
	visitRepo := postgres.NewVisitRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)

	cache := redisrepo.NewCache(redisClient)
	limiter := ratelimit.New(cache, cfg.Shortener.RateLimitPerWindow, cfg.Shortener.RateLimitWindow)
	publisher := events.NewPublisher(redisClient)
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.AccessTokenExpiry)

	urlService := service.NewURLService(urlRepo, cache, publisher, cfg.Shortener)
	visitService := service.NewVisitService(urlRepo, visitRepo, publisher, cfg.Shortener)
	authService := service.NewAuthService(userRepo, tokens)

	urlHandler := handler.NewURLHandler(urlService, visitService, cfg.Server.BaseURL)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(dbPool, redisClient)

	router := setupRouter(urlHandler, authHandler, healthHandler, limiter, tokens)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, cfg, dbPool, redisClient, logg)
}

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	return pgxpool.NewWithConfig(context.Background(), poolConfig)
}

func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}

func setupRouter(
	urlHandler *handler.URLHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
	limiter *ratelimit.Limiter,
	tokens *auth.TokenManager,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimit(limiter))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	api := router.Group("/api", middleware.RequireAuth(tokens))
	{
		api.POST("/urls", urlHandler.CreateShortURL)
		api.GET("/urls", urlHandler.ListURLs)
		api.DELETE("/urls/:id", urlHandler.DeactivateURL)
	}

	router.GET("/:shortCode", urlHandler.Redirect)

	return router
}

func gracefulShutdown(srv *http.Server, cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}

	dbPool.Close()
	log.Info("Database connection closed")

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis", "error", err)
	}

	log.Info("Graceful shutdown completed")
}
