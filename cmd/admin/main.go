package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dogmatch/internal/core/auth"
	"dogmatch/internal/core/cache"
	"dogmatch/internal/core/config"
	"dogmatch/internal/core/database"
	"dogmatch/internal/core/logger"
	"dogmatch/internal/core/server"
	"dogmatch/internal/core/upload"
	"dogmatch/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// 依赖
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	var ch *cache.Cache
	if cfg.Redis.Addr != "" {
		ch = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	uploads := upload.New(cfg.Upload.Dir)

	// 路由（后台端）
	r := router.NewAdminEngine(log, db, jwter, ch, uploads)

	// HTTP Server
	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	// 启动前打印可点击地址
	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	// 异步启动；失败立即标红退出
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && err != http.ErrServerClosed {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	// 关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err)) // 失败日志
	}
	return db
}
