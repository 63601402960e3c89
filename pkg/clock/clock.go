// Package clock 提供"今天"的日历日期，折扣窗口按日期比较
package clock

import (
	"fmt"
	"time"
)

// DateLayout 日期格式(与数据库date列一致)
const DateLayout = "2006-01-02"

// Clock 时钟接口，测试时注入Fixed
type Clock interface {
	// Today 当前日历日期，时分秒为0，时区为UTC
	Today() time.Time
}

// System 系统时钟，在配置的时区取当天日期
type System struct {
	loc *time.Location
}

// NewSystem 创建系统时钟
// tz为空时使用本地时区
func NewSystem(tz string) (*System, error) {
	if tz == "" {
		return &System{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("加载时区失败: %w", err)
	}
	return &System{loc: loc}, nil
}

// Today 实现Clock
func (s *System) Today() time.Time {
	return DateOf(time.Now().In(s.loc))
}

// Fixed 固定日期时钟
type Fixed struct {
	date time.Time
}

// NewFixed 创建固定时钟
func NewFixed(t time.Time) *Fixed {
	return &Fixed{date: DateOf(t)}
}

// Today 实现Clock
func (f *Fixed) Today() time.Time {
	return f.date
}

// DateOf 取t所在时区的年月日，返回UTC零点
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// MustDate 测试辅助：解析失败直接panic
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}
