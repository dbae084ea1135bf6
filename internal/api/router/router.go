package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"class-scheduler/config"
	"class-scheduler/internal/api/handler"
	"class-scheduler/internal/api/middleware"
	"class-scheduler/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时写接口使用进程内限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	writeLimit := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程模块
		classes := v1.Group("/classes")
		{
			classes.GET("", h.Class.ListClasses)
			classes.GET("/:id", h.Class.GetClass)
			classes.POST("", writeLimit, h.Class.CreateClass)
			classes.PUT("/:id", writeLimit, h.Class.UpdateClass)
			classes.DELETE("/:id", writeLimit, h.Class.DeleteClass)
		}

		// 周视图
		timetable := v1.Group("/timetable")
		{
			timetable.GET("/week", h.Timetable.GetWeekGrid)
			timetable.GET("/options", h.Timetable.GetOptions)
		}

		// 导出
		export := v1.Group("/export")
		{
			export.GET("/excel", h.Export.ExportExcel)
			export.GET("/ics", h.Export.ExportICS)
		}
	}

	return r
}
