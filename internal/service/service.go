package service

import (
	"go.uber.org/zap"

	"class-scheduler/config"
	"class-scheduler/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	Export    ExportService
}

// NewService 创建 Service 聚合；导出服务读取课程服务的内存快照
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	timetableSvc := NewTimetableService(&cfg.Timetable, repo, logger)
	return &Service{
		Timetable: timetableSvc,
		Export:    NewExportService(timetableSvc, &cfg.Timetable, logger),
	}
}
