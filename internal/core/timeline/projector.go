// Package timeline 将事件时间投影到一小时宽的时间轴上
package timeline

import "github.com/gowvp/securesight/internal/core/incident"

const (
	// MinutesPerWindow 时间轴一格为一小时
	MinutesPerWindow = 60
	// DefaultMinWidthPct 事件最小可见宽度（百分比），固定值，不随缩放变化
	DefaultMinWidthPct = 1.0
	// defaultDurationMinutes 缺省或为 0 的时长按 1 分钟显示
	defaultDurationMinutes = 1.0
)

// Interval 时间轴上的水平区间，单位为百分比
type Interval struct {
	StartPct float64 `json:"start_pct"`
	WidthPct float64 `json:"width_pct"`
}

// EndPct 区间右边界
func (i Interval) EndPct() float64 {
	return i.StartPct + i.WidthPct
}

// Projector 时间轴投影
type Projector struct {
	MinWidthPct float64
}

// NewProjector minWidthPct 不在 (0,100] 时使用默认值
func NewProjector(minWidthPct float64) Projector {
	if minWidthPct <= 0 || minWidthPct > 100 {
		minWidthPct = DefaultMinWidthPct
	}
	return Projector{MinWidthPct: minWidthPct}
}

// Project 计算事件在 windowHour 时间轴上的区间
// 事件不在该小时内返回 false，这是正常的窗口过滤而不是错误；时间损坏的事件同样不投影
func (p Projector) Project(t incident.ClockTime, durationMinutes *float64, windowHour int) (Interval, bool) {
	if !t.Valid() || windowHour < MinHour || windowHour > MaxHour || t.Hour() != windowHour {
		return Interval{}, false
	}

	start := float64(t.Minute()) / MinutesPerWindow * 100

	duration := defaultDurationMinutes
	if durationMinutes != nil && *durationMinutes > 0 {
		duration = *durationMinutes
	}
	width := max(duration*(100.0/MinutesPerWindow), p.minWidth())

	// 不允许溢出到下一个小时；分钟最大 59，start 不会超过 98.4，width 始终大于 0
	if start+width > 100 {
		width = 100 - start
	}
	return Interval{StartPct: start, WidthPct: width}, true
}

func (p Projector) minWidth() float64 {
	if p.MinWidthPct <= 0 {
		return DefaultMinWidthPct
	}
	return p.MinWidthPct
}
