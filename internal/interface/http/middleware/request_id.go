package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-Id"

const requestIDKey = "request_id"

// RequestID 为每个请求分配ID(客户端已携带则沿用),并写回响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 获取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
