package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/bookapi/internal/infrastructure/config"
)

// New 根据配置创建zap日志
// 设计说明：
// 1. format=console时使用开发者友好的彩色输出，json用于生产环境日志采集
// 2. output支持stdout、stderr或文件路径
// 3. 替换zap全局Logger，供response等无注入点的包使用
// 返回的cleanup负责Sync缓冲区并恢复全局Logger
func New(cfg *config.Config) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("无效的日志级别: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Log.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Log.Format
	zc.DisableCaller = !cfg.Log.EnableCaller
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{cfg.Log.Output}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("创建日志失败: %w", err)
	}
	l = l.With(zap.String("service", cfg.Tracing.ServiceName))

	restore := zap.ReplaceGlobals(l)
	cleanup := func() {
		_ = l.Sync()
		restore()
	}

	return l, cleanup, nil
}
