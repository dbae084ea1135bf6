package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"class-scheduler/config"
	"class-scheduler/internal/timetable"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmpty        = errors.New("课程表为空，无可导出内容")
	ErrExportInvalidDate  = errors.New("无效的日期，格式应为 YYYY-MM-DD")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// EntrySource 导出所需的课程快照来源，由 TimetableService 实现
type EntrySource interface {
	Entries(ctx context.Context) []timetable.Entry
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel：时间段行 × 周一~周五列
//   - iCalendar：每节课一个每周重复的 VEVENT，起始周由 weekOf 指定
type ExportService interface {
	ExportExcel(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportICS weekOf 为空时取当前日期所在周
	ExportICS(ctx context.Context, weekOf string) (*bytes.Buffer, string, error)
}

type exportService struct {
	source EntrySource
	layout timetable.Layout
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例；时区无法加载时回退为 UTC
func NewExportService(source EntrySource, cfg *config.TimetableConfig, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("时区加载失败，使用 UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}
	window := timetable.Window{StartHour: cfg.WindowStartHour, EndHour: cfg.WindowEndHour}
	return &exportService{
		source: source,
		layout: timetable.NewLayout(window, cfg.PixelsPerHour),
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// Tailwind 色块对应的 Excel 填充色
var paletteHex = map[timetable.Color]string{
	"bg-blue-500":   "#3B82F6",
	"bg-green-500":  "#22C55E",
	"bg-purple-500": "#A855F7",
	"bg-red-500":    "#EF4444",
	"bg-yellow-500": "#EAB308",
	"bg-indigo-500": "#6366F1",
	"bg-pink-500":   "#EC4899",
	"bg-teal-500":   "#14B8A6",
}

// ═══════════════════════════════════════════════════════════
// ExportExcel — 导出周课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行标题，第 2 行表头：时间 | Monday ... Friday
//   - 之后每个整点时间段一行；课程写在开始时间所在的小时行
//   - 单元格："名称 / 教师 / 教室 / 开始-结束"，同格多节课换行分隔

func (s *exportService) ExportExcel(ctx context.Context) (*bytes.Buffer, string, error) {
	entries := s.source.Entries(ctx)
	if len(entries) == 0 {
		return nil, "", ErrExportEmpty
	}

	slots := s.layout.TimeSlots()
	startHour := s.layout.Window().StartHour

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课程表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", colName(len(timetable.Days)), 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", "每周课程表")
	f.MergeCell(sheetName, "A1", cell(colName(len(timetable.Days)), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, cell("A", 2), "时间")
	for i, d := range timetable.Days {
		f.SetCellValue(sheetName, cell(colName(i+1), 2), string(d))
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(timetable.Days)), 2), headerStyle)

	for i, slot := range slots {
		f.SetCellValue(sheetName, cell("A", 3+i), slot)
	}

	// 按 (day, 小时行) 聚合单元格内容
	type cellKey struct {
		col int
		row int
	}
	texts := make(map[cellKey][]string)
	colors := make(map[cellKey]timetable.Color)

	for col, d := range timetable.Days {
		for _, e := range timetable.ClassesForDay(entries, d) {
			start, err := timetable.ParseClock(e.StartTime)
			if err != nil {
				s.logger.Error("课程开始时间无效", zap.Int("id", e.ID), zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
			row := start/60 - startHour
			if row >= len(slots) {
				row = len(slots) - 1
			}
			key := cellKey{col: col + 1, row: 3 + row}
			texts[key] = append(texts[key], fmt.Sprintf("%s / %s / %s / %s-%s",
				e.Name, e.Instructor, e.Room, e.StartTime, e.EndTime))
			if _, ok := colors[key]; !ok {
				colors[key] = e.Color
			}
		}
	}

	styles := make(map[timetable.Color]int)
	for key, lines := range texts {
		name := cell(colName(key.col), key.row)
		f.SetCellValue(sheetName, name, strings.Join(lines, "\n"))

		c := colors[key]
		styleID, ok := styles[c]
		if !ok {
			styleID, _ = f.NewStyle(&excelize.Style{
				Fill:      excelize.Fill{Type: "pattern", Color: []string{paletteHex[c]}, Pattern: 1},
				Font:      &excelize.Font{Color: "#FFFFFF"},
				Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			})
			styles[c] = styleID
		}
		f.SetCellStyle(sheetName, name, name, styleID)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "timetable.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context, weekOf string) (*bytes.Buffer, string, error) {
	ref := s.now().In(s.loc)
	if weekOf != "" {
		parsed, err := time.ParseInLocation("2006-01-02", weekOf, s.loc)
		if err != nil {
			return nil, "", ErrExportInvalidDate
		}
		ref = parsed
	}

	entries := s.source.Entries(ctx)
	if len(entries) == 0 {
		return nil, "", ErrExportEmpty
	}

	monday := weekStart(ref)
	stamp := s.now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//class-scheduler//timetable//CN")
	cal.SetXWRCalName("课程表")
	cal.SetXWRTimezone(s.loc.String())

	for _, e := range entries {
		start, end, err := s.occurrence(monday, e)
		if err != nil {
			s.logger.Error("课程时间无效", zap.Int("id", e.ID), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}

		event := cal.AddEvent(fmt.Sprintf("class-%d-%s@class-scheduler", e.ID, monday.Format("20060102")))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(e.Name)
		event.SetLocation(e.Room)
		event.SetDescription(e.Instructor)
		event.AddProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, fmt.Sprintf("timetable_%s.ics", monday.Format("20060102")), nil
}

// occurrence 课程在指定周内的开始/结束时刻
func (s *exportService) occurrence(monday time.Time, e timetable.Entry) (time.Time, time.Time, error) {
	startMin, err := timetable.ParseClock(e.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := timetable.ParseClock(e.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	offset := int(e.Day.Weekday() - time.Monday)
	day := monday.AddDate(0, 0, offset)
	start := time.Date(day.Year(), day.Month(), day.Day(), startMin/60, startMin%60, 0, 0, s.loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), endMin/60, endMin%60, 0, 0, s.loc)
	return start, end, nil
}

// ── 辅助函数 ──

// weekStart 返回 t 所在周的周一零点
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
