package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillbridge/internal/config"
	"skillbridge/internal/database"
	"skillbridge/internal/pkg/cache"
	"skillbridge/internal/pkg/events"
	jwtsvc "skillbridge/internal/pkg/jwt"
	"skillbridge/internal/pkg/logger"
	"skillbridge/internal/pkg/storage"
	"skillbridge/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Env:    cfg.AppEnv,
	}); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migration failed", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		cacheStore = redisCache
	}

	var publisher events.Publisher = events.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("rabbitmq connection failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("rabbitmq connected", zap.String("exchange", events.ExchangeName))
		publisher = rabbit
	} else {
		logger.Info("rabbitmq disabled, booking events go to the log")
	}
	defer publisher.Close()

	var uploader storage.Uploader = storage.Disabled{}
	if cfg.CloudinaryURL != "" {
		cld, err := storage.NewCloudinary(cfg.CloudinaryURL, cfg.UploadFolder)
		if err != nil {
			logger.Error("cloudinary init failed", zap.Error(err))
			os.Exit(1)
		}
		uploader = cld
	} else {
		logger.Info("cloudinary disabled, uploads return 503")
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	r := server.NewRouter(server.Deps{
		Context:        appCtx,
		DB:             db,
		JWT:            jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Cache:          cacheStore,
		CacheTTL:       cfg.CacheTTL,
		Publisher:      publisher,
		Uploader:       uploader,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopApp()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
