package timeline

import (
	"fmt"
	"time"

	"github.com/gowvp/securesight/internal/core/incident"
)

const (
	rulerTicks    = 7  // 每 10 分钟一个刻度，包含两端
	rulerStepMins = 10 // 刻度间隔
	gridLines     = 6
)

// Event 某个小时窗口内可投影的事件，只引用事件 id，不持有事件
type Event struct {
	IncidentID      string            `json:"incident_id"`
	Time            string            `json:"time"` // HH:MM
	Title           string            `json:"title"`
	Severity        incident.Severity `json:"severity"`
	DurationMinutes *float64          `json:"duration_minutes,omitempty"`
	Interval
}

// Build 只为落在窗口内的事件生成时间轴条目，保持输入顺序
func (p Projector) Build(items []*incident.Incident, windowHour int) []Event {
	out := make([]Event, 0, len(items))
	for _, v := range items {
		iv, ok := p.Project(v.Timestamp, v.DurationMinutes, windowHour)
		if !ok {
			continue
		}
		out = append(out, Event{
			IncidentID:      v.ID,
			Time:            v.Timestamp.HHMM(),
			Title:           v.Title,
			Severity:        v.Severity,
			DurationMinutes: v.DurationMinutes,
			Interval:        iv,
		})
	}
	return out
}

// Ruler 刻度文本，14:00 14:10 ... 15:00
func Ruler(hour int) []string {
	out := make([]string, 0, rulerTicks)
	for i := range rulerTicks {
		m := i * rulerStepMins
		out = append(out, fmt.Sprintf("%02d:%02d", hour+m/60, m%60))
	}
	return out
}

// GridLines 竖向网格线位置（百分比）
func GridLines() []float64 {
	out := make([]float64, 0, gridLines)
	for i := range gridLines {
		out = append(out, float64(i+1)*(100.0/gridLines))
	}
	return out
}

// NowIndicator 当前时间在时间轴上的位置，仅当窗口就是当前小时时显示
func NowIndicator(now time.Time, hour int) (float64, bool) {
	if now.Hour() != hour {
		return 0, false
	}
	return float64(now.Minute()) / MinutesPerWindow * 100, true
}
