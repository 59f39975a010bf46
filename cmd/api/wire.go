//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookapi/internal/application/book"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/internal/infrastructure/logger"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/repository"
	"github.com/xiebiao/bookapi/internal/interface/http/handler"
	"github.com/xiebiao/bookapi/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖：配置、日志、数据库连接
// logger.New和database.NewDB都返回cleanup，Wire会按逆序串联
var infrastructureSet = wire.NewSet(
	config.Load,
	logger.New,
	database.NewDB,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	repository.NewBookRepository,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewService,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewHealthHandler,
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup依次关闭数据库连接、刷新日志
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
