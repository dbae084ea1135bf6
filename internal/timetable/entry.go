package timetable

import (
	"fmt"
	"time"
)

// Day 上课日，仅限周一至周五
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Days 固定顺序的五个上课日
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid 判断是否属于固定上课日集合
func (d Day) Valid() bool {
	for _, day := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// Weekday 转换为 time.Weekday（导出日历时使用）
func (d Day) Weekday() time.Weekday {
	for i, day := range Days {
		if d == day {
			return time.Monday + time.Weekday(i)
		}
	}
	return time.Sunday
}

// Color 色板中的一个色块
type Color string

// Palette 固定色板
var Palette = []Color{
	"bg-blue-500", "bg-green-500", "bg-purple-500", "bg-red-500",
	"bg-yellow-500", "bg-indigo-500", "bg-pink-500", "bg-teal-500",
}

// Valid 判断颜色是否在色板内
func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Entry 一节课程安排。ID 为 0 表示尚未保存的草稿。
type Entry struct {
	ID         int    `json:"id"`
	Name       string `json:"name"        validate:"notblank"`
	Instructor string `json:"instructor"  validate:"notblank"`
	Room       string `json:"room"        validate:"notblank"`
	Day        Day    `json:"day"         validate:"weekday"`
	StartTime  string `json:"start_time"  validate:"clock"`
	EndTime    string `json:"end_time"    validate:"clock"`
	Color      Color  `json:"color"       validate:"palette"`
}

// Window 周视图展示的时间窗口（整点，含两端）
type Window struct {
	StartHour int
	EndHour   int
}

// DefaultWindow 08:00–21:00，共 13 个整点格
var DefaultWindow = Window{StartHour: 8, EndHour: 21}

// Contains 判断分钟数是否落在窗口内
func (w Window) Contains(minutes int) bool {
	return minutes >= w.StartHour*60 && minutes <= w.EndHour*60
}

// ParseClock 将零填充的 HH:MM 解析为当天分钟数
func ParseClock(s string) (int, error) {
	// time.Parse 对小时接受一位数字，这里强制定长
	if len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock 将分钟数格式化为 HH:MM
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
