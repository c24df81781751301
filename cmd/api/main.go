package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadp "consignado-backend/internal/adapter/http"
	"consignado-backend/internal/adapter/middleware"
	"consignado-backend/internal/adapter/repository/mysql"
	"consignado-backend/internal/config"
	"consignado-backend/internal/infrastructure/cache"
	"consignado-backend/internal/infrastructure/db"
	"consignado-backend/internal/infrastructure/logger"
	"consignado-backend/internal/storage"
	"consignado-backend/internal/usecase/auth"
	ucFactor "consignado-backend/internal/usecase/factor"
	ucProposal "consignado-backend/internal/usecase/proposal"
	ucSettings "consignado-backend/internal/usecase/settings"
	"consignado-backend/internal/usecase/simulation"
)

func main() {
	cfg := config.Load()
	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), zl)
	if err != nil {
		zl.Fatal("open mysql", zap.Error(err))
	}
	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			zl.Fatal("auto migrate", zap.Error(err))
		}
	}

	// idempotency degrades to pass-through without redis
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		if rdb, err = cache.OpenRedis(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}); err != nil {
			zl.Warn("redis unavailable; idempotency disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			rdb = nil
		}
	}

	factors := mysql.NewFactorRepository(gdb)
	proposals := mysql.NewProposalRepository(gdb)
	settings := mysql.NewSettingRepository(gdb)
	admins := mysql.NewAdminRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	storageSvc := storage.NewService(storage.NewFactory(settings, storage.S3Options{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	}, cfg.StorageTimeout, zl.Named("storage")), zl.Named("storage"))

	authUC, err := auth.NewUsecase(admins, cfg.JWTSecret, zl)
	if err != nil {
		zl.Fatal("auth", zap.Error(err))
	}
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authUC.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		zl.Error("seed master admin", zap.Error(err))
	}
	cancelSeed()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			zl.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error))
			return nil
		},
	}))
	e.Use(echomw.BodyLimit("25M"))

	checks := map[string]httpadp.Check{"database": db.Checker(gdb)}
	if rdb != nil {
		checks["redis"] = cache.Checker(rdb)
	}

	httpadp.Register(e, httpadp.Routes{
		Health:       httpadp.NewHandler(checks, zl),
		Factors:      httpadp.NewFactorHandler(ucFactor.NewUsecase(factors, zl), zl),
		Simulations:  httpadp.NewSimulationHandler(simulation.NewUsecase(factors, zl), zl),
		Proposals:    httpadp.NewProposalHandler(ucProposal.NewUsecase(proposals, tx, storageSvc, zl), zl),
		Settings:     httpadp.NewSettingsHandler(ucSettings.NewUsecase(settings, storageSvc, zl), zl),
		Auth:         httpadp.NewAuthHandler(authUC, cfg.CookieSecure, zl),
		RequireAdmin: middleware.RequireAdmin(authUC, zl),
		Idempotency:  middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zl),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		zl.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
