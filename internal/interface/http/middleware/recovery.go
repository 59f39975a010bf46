package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/response"
)

// Recovery 捕获panic,记录堆栈并返回500
// 响应已经开始写出时只记录日志
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Error(c, apperrors.ErrInternal.WithCause(fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}
