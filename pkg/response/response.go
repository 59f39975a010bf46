package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

// Response 统一错误响应结构
// 设计说明：
// 1. 成功时直接返回业务数据（保持DTO线格式兼容），失败时返回此结构
// 2. Code是业务错误码，HTTP状态码由StatusOf推导
// 3. Message是用户友好的提示信息
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应，并设置Location头
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// NoContent 204响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	dto, err := bookService.Create(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := StatusOf(appErr.Code)

	// 记录详细错误到日志（包含内部错误），客户端只看到Message
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(appErr),
		)
	}

	c.AbortWithStatusJSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(StatusOf(code), Response{
		Code:    code,
		Message: message,
	})
}

// StatusOf 业务错误码 → HTTP状态码
func StatusOf(code int) int {
	switch {
	case code == apperrors.ErrCodeInvalidParams || code == apperrors.ErrCodeBindError:
		return http.StatusBadRequest
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code == apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case code >= 50000:
		return http.StatusInternalServerError
	case code >= 40000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
