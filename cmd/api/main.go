package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/pkg/tracing"
)

// @title        Books API
// @version      v1
// @description  API for managing books
// @BasePath     /

// main 主程序入口
// 依赖由Wire组装（见wire.go），这里只负责启动和优雅退出
func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	if err := run(app); err != nil {
		app.Logger.Error("服务异常退出", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(app *App) error {
	cfg := app.Config
	logger := app.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
		logger.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 2. HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动成功",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.Bool("swagger", cfg.Server.EnableSwagger),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 3. 等待退出信号
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("收到退出信号，正在关闭服务", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}

	logger.Info("服务已退出")
	return nil
}
