package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"class-scheduler/config"
	"class-scheduler/internal/dto"
	"class-scheduler/internal/model"
	"class-scheduler/internal/repository"
	"class-scheduler/internal/timetable"
)

// ── 课程模块业务错误 ──

var (
	ErrClassNotFound     = timetable.ErrNotFound
	ErrClassValidation   = timetable.ErrValidation
	ErrClassInvalidRange = timetable.ErrInvalidRange
	ErrClassInvalidDay   = errors.New("无效的上课日")
)

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 进程内只有一个 timetable.Store，由本服务独占；读写经同一把锁串行化，
//     锁的粒度是一次完整的 create / update / delete。
//   - 启动时 Bootstrap 从数据库读取一次初始集合，之后内存集合为权威数据。
//   - 写操作先作用于集合副本，同步写库成功后再替换；写库失败时内存集合保持不变。
//     存储调用只有成功/失败两种结果，不做重试。
// ─────────────────────────────────────────────────────────────

// TimetableService 课程时间表业务接口
type TimetableService interface {
	// Bootstrap 从存储读取初始课程集合
	Bootstrap(ctx context.Context) error
	// ListClasses 列表视图（插入顺序）；指定 day 时按开始时间排序
	ListClasses(ctx context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, error)
	GetClass(ctx context.Context, id int) (*dto.ClassResponse, error)
	CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassMutationResponse, error)
	UpdateClass(ctx context.Context, id int, req *dto.UpdateClassRequest) (*dto.ClassMutationResponse, error)
	// DeleteClass 幂等删除：不存在的 id 不报错
	DeleteClass(ctx context.Context, id int) (*dto.ClassMutationResponse, error)
	// GetWeekGrid 周视图几何
	GetWeekGrid(ctx context.Context) (*dto.WeekGridResponse, error)
	// GetOptions 编辑表单可选项与新建默认值
	GetOptions(ctx context.Context) *dto.TimetableOptionsResponse
	// Entries 当前集合快照（导出使用）
	Entries(ctx context.Context) []timetable.Entry
}

type timetableService struct {
	repo      *repository.Repository
	validator *timetable.Validator
	layout    timetable.Layout
	logger    *zap.Logger

	mu    sync.RWMutex
	store *timetable.Store
}

// NewTimetableService 创建 TimetableService 实例，初始集合为空，需调用 Bootstrap 加载
func NewTimetableService(cfg *config.TimetableConfig, repo *repository.Repository, logger *zap.Logger) TimetableService {
	window := timetable.Window{StartHour: cfg.WindowStartHour, EndHour: cfg.WindowEndHour}
	v := timetable.NewValidator(window)
	store, _ := timetable.NewStore(v, nil)

	return &timetableService{
		repo:      repo,
		validator: v,
		layout:    timetable.NewLayout(window, cfg.PixelsPerHour),
		logger:    logger,
		store:     store,
	}
}

// ────────────────────── Bootstrap ──────────────────────

func (s *timetableService) Bootstrap(ctx context.Context) error {
	rows, err := s.repo.ClassEntry.List(ctx)
	if err != nil {
		s.logger.Error("读取课程数据失败", zap.Error(err))
		return fmt.Errorf("读取课程数据失败: %w", err)
	}

	entries := make([]timetable.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toEntry(&rows[i]))
	}

	store, err := timetable.NewStore(s.validator, entries)
	if err != nil {
		s.logger.Error("课程数据不合法", zap.Error(err))
		return fmt.Errorf("加载课程集合失败: %w", err)
	}

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()

	s.logger.Info("课程集合加载完成", zap.Int("count", store.Len()))
	return nil
}

// ────────────────────── List / Get ──────────────────────

func (s *timetableService) ListClasses(ctx context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if req == nil || req.Day == "" {
		return toClassResponses(s.store.List()), nil
	}

	day := timetable.Day(req.Day)
	if !day.Valid() {
		return nil, ErrClassInvalidDay
	}
	return toClassResponses(s.store.ListByDay(day)), nil
}

func (s *timetableService) GetClass(ctx context.Context, id int) (*dto.ClassResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store.Get(id)
	if !ok {
		return nil, &timetable.NotFoundError{ID: id}
	}
	resp := toClassResponse(e)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *timetableService) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassMutationResponse, error) {
	draft := timetable.Entry{
		Name:       req.Name,
		Instructor: req.Instructor,
		Room:       req.Room,
		Day:        timetable.Day(req.Day),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Color:      timetable.Color(req.Color),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.store.Clone()
	created, err := next.Create(draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClassEntry.Create(ctx, toModel(created)); err != nil {
		s.logger.Error("保存课程失败", zap.Int("id", created.ID), zap.Error(err))
		return nil, fmt.Errorf("保存课程失败: %w", err)
	}

	s.store = next
	s.logger.Info("课程已创建", zap.Int("id", created.ID), zap.String("name", created.Name))
	return s.mutationResponse(&created), nil
}

// ────────────────────── Update ──────────────────────

func (s *timetableService) UpdateClass(ctx context.Context, id int, req *dto.UpdateClassRequest) (*dto.ClassMutationResponse, error) {
	entry := timetable.Entry{
		ID:         id,
		Name:       req.Name,
		Instructor: req.Instructor,
		Room:       req.Room,
		Day:        timetable.Day(req.Day),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Color:      timetable.Color(req.Color),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.store.Clone()
	updated, err := next.Update(entry)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClassEntry.Update(ctx, toModel(updated)); err != nil {
		s.logger.Error("更新课程失败", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("更新课程失败: %w", err)
	}

	s.store = next
	return s.mutationResponse(&updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *timetableService) DeleteClass(ctx context.Context, id int) (*dto.ClassMutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.store.Clone()
	if !next.Delete(id) {
		// 不存在视为已删除，不触达存储
		return s.mutationResponse(nil), nil
	}

	if err := s.repo.ClassEntry.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("删除课程失败: %w", err)
	}

	s.store = next
	s.logger.Info("课程已删除", zap.Int("id", id))
	return s.mutationResponse(nil), nil
}

// ────────────────────── Week grid ──────────────────────

func (s *timetableService) GetWeekGrid(ctx context.Context) (*dto.WeekGridResponse, error) {
	s.mu.RLock()
	entries := s.store.List()
	s.mu.RUnlock()

	columns, err := s.layout.Week(entries)
	if err != nil {
		// 集合内条目均已校验，走到这里说明存在逻辑错误
		s.logger.Error("周视图计算失败", zap.Error(err))
		return nil, err
	}

	days := make([]dto.DayColumnResponse, 0, len(columns))
	for _, col := range columns {
		blocks := make([]dto.GridBlockResponse, 0, len(col.Blocks))
		for _, b := range col.Blocks {
			blocks = append(blocks, dto.GridBlockResponse{
				Top:    b.Top,
				Height: b.Height,
				Class:  toClassResponse(b.Entry),
			})
		}
		days = append(days, dto.DayColumnResponse{Day: string(col.Day), Classes: blocks})
	}

	return &dto.WeekGridResponse{
		TimeSlots:     s.layout.TimeSlots(),
		PixelsPerHour: s.layout.PixelsPerHour(),
		Days:          days,
	}, nil
}

// ────────────────────── Options ──────────────────────

func (s *timetableService) GetOptions(ctx context.Context) *dto.TimetableOptionsResponse {
	days := make([]string, 0, len(timetable.Days))
	for _, d := range timetable.Days {
		days = append(days, string(d))
	}
	colors := make([]string, 0, len(timetable.Palette))
	for _, c := range timetable.Palette {
		colors = append(colors, string(c))
	}

	return &dto.TimetableOptionsResponse{
		Days:      days,
		Colors:    colors,
		TimeSlots: s.layout.TimeSlots(),
		Draft:     toClassResponse(newDraft()),
	}
}

func (s *timetableService) Entries(ctx context.Context) []timetable.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List()
}

// ── 内部辅助方法 ──

// newDraft 新建课程的默认草稿：id=0，周一 09:00-10:00，随机色块
func newDraft() timetable.Entry {
	return timetable.Entry{
		ID:        0,
		Day:       timetable.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		Color:     timetable.Palette[rand.Intn(len(timetable.Palette))],
	}
}

// mutationResponse 调用方需持有锁
func (s *timetableService) mutationResponse(changed *timetable.Entry) *dto.ClassMutationResponse {
	resp := &dto.ClassMutationResponse{Classes: toClassResponses(s.store.List())}
	if changed != nil {
		c := toClassResponse(*changed)
		resp.Class = &c
	}
	return resp
}

func toEntry(m *model.ClassEntry) timetable.Entry {
	return timetable.Entry{
		ID:         m.ID,
		Name:       m.Name,
		Instructor: m.Instructor,
		Room:       m.Room,
		Day:        timetable.Day(m.Day),
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Color:      timetable.Color(m.Color),
	}
}

func toModel(e timetable.Entry) *model.ClassEntry {
	return &model.ClassEntry{
		ID:         e.ID,
		Name:       e.Name,
		Instructor: e.Instructor,
		Room:       e.Room,
		Day:        string(e.Day),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Color:      string(e.Color),
	}
}

func toClassResponse(e timetable.Entry) dto.ClassResponse {
	return dto.ClassResponse{
		ID:         e.ID,
		Name:       e.Name,
		Instructor: e.Instructor,
		Room:       e.Room,
		Day:        string(e.Day),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Color:      string(e.Color),
	}
}

func toClassResponses(entries []timetable.Entry) []dto.ClassResponse {
	result := make([]dto.ClassResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, toClassResponse(e))
	}
	return result
}
