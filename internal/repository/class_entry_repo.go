package repository

import (
	"context"

	"gorm.io/gorm"

	"class-scheduler/internal/model"
)

// ClassEntryRepository 课程数据访问接口（外部持久化存储）
type ClassEntryRepository interface {
	// List 按 id 升序返回全部课程；id 按 max+1 分配，升序即插入顺序
	List(ctx context.Context) ([]model.ClassEntry, error)
	Create(ctx context.Context, entry *model.ClassEntry) error
	// Update 整体覆盖；记录不存在时返回 gorm.ErrRecordNotFound
	Update(ctx context.Context, entry *model.ClassEntry) error
	// Delete 硬删除；记录不存在时不报错
	Delete(ctx context.Context, id int) error
}

type classEntryRepo struct {
	db *gorm.DB
}

// NewClassEntryRepo 创建 ClassEntryRepository 实例
func NewClassEntryRepo(db *gorm.DB) ClassEntryRepository {
	return &classEntryRepo{db: db}
}

func (r *classEntryRepo) List(ctx context.Context) ([]model.ClassEntry, error) {
	var entries []model.ClassEntry
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *classEntryRepo) Create(ctx context.Context, entry *model.ClassEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *classEntryRepo) Update(ctx context.Context, entry *model.ClassEntry) error {
	result := r.db.WithContext(ctx).
		Model(&model.ClassEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"name":       entry.Name,
			"instructor": entry.Instructor,
			"room":       entry.Room,
			"day":        entry.Day,
			"start_time": entry.StartTime,
			"end_time":   entry.EndTime,
			"color":      entry.Color,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *classEntryRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ClassEntry{}).Error
}
