package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/infrastructure/config"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Engine *gin.Engine
}

func newApp(cfg *config.Config, log *zap.Logger, engine *gin.Engine) *App {
	return &App{
		Config: cfg,
		Logger: log,
		Engine: engine,
	}
}
