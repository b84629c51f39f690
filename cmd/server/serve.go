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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campagnoli/controle-ferroviario/config"
	"github.com/campagnoli/controle-ferroviario/internal/api/handler"
	"github.com/campagnoli/controle-ferroviario/internal/api/router"
	"github.com/campagnoli/controle-ferroviario/internal/repository"
	"github.com/campagnoli/controle-ferroviario/internal/service"
	"github.com/campagnoli/controle-ferroviario/pkg/jwt"
	applogger "github.com/campagnoli/controle-ferroviario/pkg/logger"
	"github.com/campagnoli/controle-ferroviario/pkg/redis"
)

func runServer(configPath string) error {
	// 1. 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("session_store", cfg.Session.Store),
	)

	// 3. 连接 Redis（可选：连接失败时降级为进程内会话存储，报表接口不限流）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，降级运行", zap.Error(err))
			rdb = nil
		}
	}

	// 4. 报表落盘目录
	if cfg.Report.OutputDir != "" {
		if err := os.MkdirAll(cfg.Report.OutputDir, 0o750); err != nil {
			logger.Warn("创建报表目录失败，报表将不落盘", zap.String("dir", cfg.Report.OutputDir), zap.Error(err))
			cfg.Report.OutputDir = ""
		}
	}

	// 5. 会话 Token 管理器
	jwtMgr := jwt.NewManager(&cfg.Session)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(&cfg.Session, rdb, logger)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(svc)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if mem, ok := repo.Session.(*repository.MemorySessionRepo); ok {
		go mem.RunJanitor(ctx, cfg.Session.SweepInterval)
	}

	// 7. 初始化路由
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("HTTP 服务器异常", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}
	stop()

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
	return nil
}
