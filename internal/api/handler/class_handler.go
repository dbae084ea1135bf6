package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"class-scheduler/internal/dto"
	"class-scheduler/internal/service"
	"class-scheduler/internal/timetable"
	"class-scheduler/pkg/response"
)

// ClassHandler 课程模块 HTTP 处理器
type ClassHandler struct {
	svc service.TimetableService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(svc service.TimetableService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// ListClasses 课程列表
// GET /api/v1/classes?day=Monday
func (h *ClassHandler) ListClasses(c *gin.Context) {
	var req dto.ClassListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.svc.ListClasses(c.Request.Context(), &req)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, list)
}

// GetClass 课程详情
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := MustGetClassID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetClass(c.Request.Context(), id)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateClass 新建课程
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if !MustBindJSON(c, &req) {
		return
	}

	resp, err := h.svc.CreateClass(c.Request.Context(), &req)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.Created(c, resp)
}

// UpdateClass 编辑课程
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := MustGetClassID(c)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if !MustBindJSON(c, &req) {
		return
	}

	resp, err := h.svc.UpdateClass(c.Request.Context(), id, &req)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteClass 删除课程（幂等）
// DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := MustGetClassID(c)
	if !ok {
		return
	}

	resp, err := h.svc.DeleteClass(c.Request.Context(), id)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleClassError(c *gin.Context, err error) {
	var verr *timetable.ValidationError
	switch {
	case errors.As(err, &verr):
		response.UnprocessableEntity(c, 17002, "课程参数校验失败", verr.Fields)
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 17001, "课程不存在")
	case errors.Is(err, service.ErrClassInvalidRange):
		response.BadRequest(c, 17003, "结束时间必须晚于开始时间")
	case errors.Is(err, service.ErrClassInvalidDay):
		response.BadRequest(c, 17004, "无效的上课日")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
