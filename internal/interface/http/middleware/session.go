package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/dbsession"
)

// UnitOfWork 为每个请求创建一个数据库会话并注入Context
// 仓储通过dbsession.FromContext取用,同一请求内的所有仓储调用共享该会话
func UnitOfWork(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := dbsession.New(db)
		c.Request = c.Request.WithContext(dbsession.WithSession(c.Request.Context(), s))

		c.Next()

		// 仓储每次写操作都会立即提交,走到这里仍有变更说明有调用方漏了SaveChanges
		if s.HasChanges() {
			log.Warn("请求结束时会话仍有未提交的变更",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.FullPath()),
			)
		}
	}
}
