package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/database"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/response"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Home 默认首页
// @Summary  首页
// @Tags     Health
// @Produce  plain
// @Success  200 {string} string "Hello World!"
// @Router   / [get]
func (h *HealthHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

// Ping 检查数据库连通性
// @Summary  健康检查
// @Tags     Health
// @Produce  json
// @Success  200 {object} map[string]string
// @Failure  503 {object} response.Response "数据库不可用"
// @Router   /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		response.Error(c, apperrors.ErrUnavailable.WithCause(err))
		return
	}

	response.OK(c, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}
