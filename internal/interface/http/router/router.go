package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/xiebiao/bookapi/docs"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/internal/interface/http/handler"
	"github.com/xiebiao/bookapi/internal/interface/http/middleware"
	"github.com/xiebiao/bookapi/pkg/metrics"
)

// New 创建Gin引擎并注册全部路由
// 中间件顺序：RequestID → Recovery → Tracing → Logger → Metrics，/api路由组额外挂UnitOfWork
func New(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	bookHandler *handler.BookHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Tracing(cfg.Tracing.ServiceName),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	r.GET("/", healthHandler.Home)
	r.GET("/ping", healthHandler.Ping)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger文档：http://localhost:8080/swagger/index.html
	// 生产环境通过server.enable_swagger关闭
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.Use(middleware.UnitOfWork(db, log))
	{
		books := api.Group("/books")
		{
			books.GET("", bookHandler.GetAllBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", bookHandler.Create)
			books.PUT("", bookHandler.Update)
			books.DELETE("/:id", bookHandler.Delete)
		}
	}

	return r
}
