package timetable

// DefaultPixelsPerHour 周视图每小时对应的像素高度
const DefaultPixelsPerHour = 80

// Layout 将时间映射为周视图中的像素几何。无状态，构造后不可变。
type Layout struct {
	window        Window
	pixelsPerHour int
}

// NewLayout 创建布局映射器
func NewLayout(window Window, pixelsPerHour int) Layout {
	return Layout{window: window, pixelsPerHour: pixelsPerHour}
}

// Window 返回展示窗口
func (l Layout) Window() Window { return l.window }

// PixelsPerHour 返回每小时像素数
func (l Layout) PixelsPerHour() int { return l.pixelsPerHour }

// TimeToOffset 计算时间相对窗口起点的纵向偏移（像素）。
// 窗口外的时间会得到负值或超出网格的值，不做截断。
func (l Layout) TimeToOffset(hhmm string) (int, error) {
	m, err := ParseClock(hhmm)
	if err != nil {
		return 0, err
	}
	return (m - l.window.StartHour*60) * l.pixelsPerHour / 60, nil
}

// DurationToHeight 计算时间段的像素高度；时长必须为正
func (l Layout) DurationToHeight(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e-s <= 0 {
		return 0, &InvalidRangeError{Start: start, End: end}
	}
	return (e - s) * l.pixelsPerHour / 60, nil
}

// TimeSlots 返回窗口内每个整点格的标签，例如 08:00 … 20:00
func (l Layout) TimeSlots() []string {
	slots := make([]string, 0, l.window.EndHour-l.window.StartHour)
	for h := l.window.StartHour; h < l.window.EndHour; h++ {
		slots = append(slots, FormatClock(h*60))
	}
	return slots
}

// Block 周视图中一节课的位置与高度
type Block struct {
	Top    int
	Height int
	Entry  Entry
}

// DayColumn 周视图中的一列
type DayColumn struct {
	Day    Day
	Blocks []Block
}

// Place 计算单节课的几何位置
func (l Layout) Place(e Entry) (Block, error) {
	top, err := l.TimeToOffset(e.StartTime)
	if err != nil {
		return Block{}, err
	}
	height, err := l.DurationToHeight(e.StartTime, e.EndTime)
	if err != nil {
		return Block{}, err
	}
	return Block{Top: top, Height: height, Entry: e}, nil
}

// Week 按固定五天生成周视图。同一天内时间重叠的课程各自独立定位，不做避让。
func (l Layout) Week(entries []Entry) ([]DayColumn, error) {
	columns := make([]DayColumn, 0, len(Days))
	for _, day := range Days {
		col := DayColumn{Day: day, Blocks: []Block{}}
		for _, e := range ClassesForDay(entries, day) {
			b, err := l.Place(e)
			if err != nil {
				return nil, err
			}
			col.Blocks = append(col.Blocks, b)
		}
		columns = append(columns, col)
	}
	return columns, nil
}
