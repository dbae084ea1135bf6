package timetable

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 校验失败原因（按 tag 映射）
var reasons = map[string]string{
	"notblank":    "不能为空",
	"weekday":     "必须为 Monday 至 Friday",
	"clock":       "必须为展示窗口内的 HH:MM 时间",
	"palette":     "不在可选色板内",
	"after_start": "结束时间必须晚于开始时间",
	"positive_id": "id 必须为正整数",
	"unique_id":   "id 重复",
}

// Validator 课程条目校验器，时间窗口在构造时固定
type Validator struct {
	window   Window
	validate *validator.Validate
}

// NewValidator 创建校验器并注册自定义规则
func NewValidator(window Window) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误字段名使用 json 名称
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return Day(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
		return Color(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		m, err := ParseClock(fl.Field().String())
		return err == nil && window.Contains(m)
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		e := sl.Current().Interface().(Entry)
		start, err1 := ParseClock(e.StartTime)
		end, err2 := ParseClock(e.EndTime)
		if err1 != nil || err2 != nil {
			return // 格式错误已由 clock 规则报告
		}
		if start >= end {
			sl.ReportError(e.EndTime, "end_time", "EndTime", "after_start", "")
		}
	}, Entry{})

	return &Validator{window: window, validate: v}
}

// Window 返回校验使用的时间窗口
func (v *Validator) Window() Window {
	return v.window
}

// Validate 校验单个课程条目；成功时原样返回，不产生副作用
func (v *Validator) Validate(e Entry) (Entry, error) {
	err := v.validate.Struct(e)
	if err == nil {
		return e, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Entry{}, err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Reason: reasons[fe.Tag()]})
	}
	return Entry{}, out
}
