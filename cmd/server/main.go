package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/config"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/api/handler"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/api/router"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/events"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/identity"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/repository"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/service"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/database"
	applogger "github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/logger"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("identity_mode", cfg.Identity.Mode),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，限流与事件广播将降级", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化身份提供方（firebase 或 local）
	provider, err := identity.New(context.Background(), &cfg.Identity, logger)
	if err != nil {
		logger.Fatal("初始化身份提供方失败", zap.Error(err))
	}

	// 6. 变更事件发布器：Redis 不可用时退化为空实现
	var pub events.Publisher
	if rdb != nil {
		pub = events.NewRedisPublisher(rdb.Raw(), logger)
	} else {
		pub = events.NewNopPublisher()
	}

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, provider, pub, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, provider, svc.Directory, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// [自证通过] cmd/server/main.go
