package main

import (
	"context"
	"log"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"panditconnect/internal/caching"
	"panditconnect/internal/config"
	"panditconnect/internal/handlers"
	"panditconnect/internal/jobs/background"
	"panditconnect/internal/logger"
	"panditconnect/internal/models"
	"panditconnect/internal/repositories"
	"panditconnect/internal/services"
	"panditconnect/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		zl.Fatal("failed to initialize MinIO client", zap.Error(err))
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.MinioBucket); err != nil {
		zl.Fatal("failed to ensure app file bucket", zap.Error(err))
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	profileRepo := repositories.NewBusinessProfileRepo(pool)
	appFileRepo := repositories.NewAppFileRepo(pool)

	appFileSvc := services.NewAppFileService(appFileRepo, minioSvc, cfg.MinioBucket, zl)
	businessSvc := services.NewBusinessService(profileRepo, appFileSvc, cacheSvc, models.DefaultBusinessRecord(), zl)

	scheduler, err := background.NewJobScheduler(businessSvc, zl)
	if err != nil {
		zl.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer func() { _ = scheduler.Stop() }()

	businessHandlers := handlers.NewBusinessHandlers(businessSvc, zl)
	authHandlers := handlers.NewAuthHandlers(cfg.AdminPassword, []byte(cfg.JWTSecret), zl)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()
	e.HideBanner = true

	e.Use(logger.RequestLogger(zl))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	// A 50 MB package base64-encodes to ~67 MB; leave headroom for the record.
	e.Use(echoMiddleware.BodyLimit("80M"))

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")
	v1.POST("/auth/login", authHandlers.Login)
	v1.GET("/business", businessHandlers.GetBusiness)

	admin := v1.Group("")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}))
	admin.PUT("/business", businessHandlers.UpdateBusiness)

	zl.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)
	if err := e.Start(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
