package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"class-scheduler/internal/dto"
	"class-scheduler/internal/service"
	"class-scheduler/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出周课表为 Excel
// GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, contentTypeXLSX)
}

// ExportICS 导出为 iCalendar
// GET /api/v1/export/ics?week_of=2024-09-02
func (h *ExportHandler) ExportICS(c *gin.Context) {
	var req dto.ExportICSRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "week_of 格式应为 YYYY-MM-DD")
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), req.WeekOf)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, buf, filename, contentTypeICS)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, 17101, "课程表为空，无可导出内容")
	case errors.Is(err, service.ErrExportInvalidDate):
		response.BadRequest(c, 10001, "week_of 格式应为 YYYY-MM-DD")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// sendFile 设置下载响应头后写入文件内容
func sendFile(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
