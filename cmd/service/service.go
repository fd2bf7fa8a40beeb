package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-records/internal/cache"
	"user-records/internal/config"
	"user-records/internal/database"
	"user-records/internal/handler/users"
	"user-records/internal/middleware"
	"user-records/internal/router"
	"user-records/internal/upload"
	"user-records/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = func() (config.Config, error) { return config.Load() }
	newLogger       = newZapLogger
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newUploadSink   = func(root, staticRoot string) (upload.Sink, error) { return upload.NewDir(root, staticRoot) }
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	notifyContext   = notifyShutdown
	exitFunc        = os.Exit
)

func notifyShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func newZapLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger 建立失敗: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	var c cache.Cache = cache.Nop{}
	if cfg.RedisAddr != "" {
		c, err = newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn("關閉 Redis 連線失敗", zap.Error(err))
			}
		}()
	} else {
		log.Info("REDIS_ADDR 未設定，停用清單快取")
	}

	sink, err := newUploadSink(cfg.UploadDir, cfg.StaticRoot)
	if err != nil {
		return fmt.Errorf("上傳目錄建立失敗: %w", err)
	}

	e := newServer(cfg, users.Deps{
		DB:       db,
		Sink:     sink,
		Cache:    c,
		CacheTTL: cfg.CacheTTL,
		Log:      log,
	})

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	return serve(ctx, e, cfg.Addr(), log)
}

func newServer(cfg config.Config, d users.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	middleware.Register(e, middleware.Options{
		AllowOrigins: cfg.AllowOrigins,
		BodyLimit:    cfg.MaxUploadSize,
	}, d.Log)

	router.Setup(e, d, router.Static{Root: cfg.StaticRoot, Dir: cfg.UploadDir})
	return e
}

// serve 啟動 server，收到 SIGINT/SIGTERM 時優雅關閉
func serve(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	ctx, stop := notifyContext(ctx)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	}
}
