package model

// ClassEntry 课程安排表 — 对应 class_entries
// ID 由应用层分配（max+1），数据库不自增
type ClassEntry struct {
	ID         int    `gorm:"primaryKey;autoIncrement:false"  json:"id"`
	Name       string `gorm:"type:varchar(100);not null"      json:"name"`
	Instructor string `gorm:"type:varchar(100);not null"      json:"instructor"`
	Room       string `gorm:"type:varchar(50);not null"       json:"room"`
	Day        string `gorm:"type:varchar(10);not null"       json:"day"`        // Monday … Friday
	StartTime  string `gorm:"type:char(5);not null"           json:"start_time"` // HH:MM
	EndTime    string `gorm:"type:char(5);not null"           json:"end_time"`   // HH:MM
	Color      string `gorm:"type:varchar(30);not null"       json:"color"`
	BaseModel
}

// TableName 指定表名
func (ClassEntry) TableName() string { return "class_entries" }
