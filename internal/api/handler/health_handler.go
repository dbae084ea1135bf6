package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"class-scheduler/pkg/response"
)

// Pinger 可探活的依赖，*sql.DB 满足该接口
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler 健康检查
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health 存活检查 + 数据库连通性
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			response.ErrorWithDetails(c, http.StatusServiceUnavailable, 50300, "数据库不可用", err.Error())
			return
		}
	}
	response.OK(c, gin.H{"status": "ok"})
}
