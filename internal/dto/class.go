package dto

// ── 课程模块 DTO ──

// CreateClassRequest 新建课程请求（草稿）
// 字段合法性由时间表核心校验器统一判定，此处只约束长度
type CreateClassRequest struct {
	Name       string `json:"name"       binding:"max=100"`
	Instructor string `json:"instructor" binding:"max=100"`
	Room       string `json:"room"       binding:"max=50"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"` // "09:00"
	EndTime    string `json:"end_time"`   // "10:00"
	Color      string `json:"color"`
}

// UpdateClassRequest 编辑课程请求：整体覆盖同 id 条目
type UpdateClassRequest struct {
	Name       string `json:"name"       binding:"max=100"`
	Instructor string `json:"instructor" binding:"max=100"`
	Room       string `json:"room"       binding:"max=50"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Color      string `json:"color"`
}

// ClassListRequest 课程列表查询参数；day 为空时返回插入顺序的完整列表
type ClassListRequest struct {
	Day string `form:"day"`
}

// ClassResponse 课程信息响应
type ClassResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Color      string `json:"color"`
}

// ClassMutationResponse 写操作响应：变更的条目 + 变更后的完整集合快照
type ClassMutationResponse struct {
	Class   *ClassResponse  `json:"class,omitempty"`
	Classes []ClassResponse `json:"classes"`
}

// ── 周视图 ──

// GridBlockResponse 周视图中一节课的几何位置
type GridBlockResponse struct {
	Top    int           `json:"top"`
	Height int           `json:"height"`
	Class  ClassResponse `json:"class"`
}

// DayColumnResponse 周视图中的一天
type DayColumnResponse struct {
	Day     string              `json:"day"`
	Classes []GridBlockResponse `json:"classes"`
}

// WeekGridResponse 周视图响应
type WeekGridResponse struct {
	TimeSlots     []string            `json:"time_slots"`
	PixelsPerHour int                 `json:"pixels_per_hour"`
	Days          []DayColumnResponse `json:"days"`
}

// TimetableOptionsResponse 编辑表单所需的可选项与新建默认值
type TimetableOptionsResponse struct {
	Days      []string      `json:"days"`
	Colors    []string      `json:"colors"`
	TimeSlots []string      `json:"time_slots"`
	Draft     ClassResponse `json:"draft"`
}

// ── 导出 ──

// ExportICSRequest 日历导出参数
type ExportICSRequest struct {
	WeekOf string `form:"week_of" binding:"omitempty,datetime=2006-01-02"`
}
