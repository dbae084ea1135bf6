package handler

import "class-scheduler/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Class     *ClassHandler
	Timetable *TimetableHandler
	Export    *ExportHandler
	Health    *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, db Pinger) *Handler {
	return &Handler{
		Class:     NewClassHandler(svc.Timetable),
		Timetable: NewTimetableHandler(svc.Timetable),
		Export:    NewExportHandler(svc.Export),
		Health:    NewHealthHandler(db),
	}
}
