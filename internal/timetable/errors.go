package timetable

import (
	"errors"
	"fmt"
	"strings"
)

// ── 时间表核心错误 ──

var (
	ErrValidation   = errors.New("课程参数校验失败")
	ErrNotFound     = errors.New("课程不存在")
	ErrInvalidRange = errors.New("时间区间无效")
	ErrInvalidClock = errors.New("时间格式无效，应为 HH:MM")
)

// FieldError 单个字段的校验失败原因
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError 课程条目校验失败，汇总所有不合法字段
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError 按 id 查找课程失败
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: id=%d", ErrNotFound.Error(), e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidRangeError 结束时间不晚于开始时间
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: %s-%s", ErrInvalidRange.Error(), e.Start, e.End)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }
