package handler

import (
	"github.com/gin-gonic/gin"

	"class-scheduler/internal/service"
	"class-scheduler/pkg/response"
)

// TimetableHandler 周视图 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// GetWeekGrid 周视图几何：时间段标签 + 每天的课程块位置
// GET /api/v1/timetable/week
func (h *TimetableHandler) GetWeekGrid(c *gin.Context) {
	resp, err := h.svc.GetWeekGrid(c.Request.Context())
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetOptions 编辑表单可选项
// GET /api/v1/timetable/options
func (h *TimetableHandler) GetOptions(c *gin.Context) {
	response.OK(c, h.svc.GetOptions(c.Request.Context()))
}
