// Package player 事件回放状态，只属于播放器视图
//
// 真正的解码由流媒体服务完成，这里只维护播放进度时钟。
package player

import "fmt"

const (
	DefaultClipSeconds = 120
	DefaultStepSeconds = 10
)

// Clock 播放进度，范围 [0, duration]
// 与当前选中事件绑定，切换事件即重置，没有独立的生命周期
type Clock struct {
	incidentID string
	position   float64
	duration   float64
	step       float64
	playing    bool
	muted      bool
}

// NewClock clipSeconds 片段时长，stepSeconds 快进快退步长
func NewClock(clipSeconds, stepSeconds int) *Clock {
	if clipSeconds <= 0 {
		clipSeconds = DefaultClipSeconds
	}
	if stepSeconds <= 0 {
		stepSeconds = DefaultStepSeconds
	}
	return &Clock{duration: float64(clipSeconds), step: float64(stepSeconds)}
}

// Load 绑定事件；事件变化时取消之前的播放进度
func (c *Clock) Load(incidentID string) {
	if c.incidentID == incidentID {
		return
	}
	c.incidentID = incidentID
	c.position = 0
	c.playing = false
}

// Unload 取消选中后播放器回到占位状态
func (c *Clock) Unload() {
	c.Load("")
}

// Loaded 是否绑定了事件，未绑定时所有控制都无效
func (c *Clock) Loaded() bool {
	return c.incidentID != ""
}

func (c *Clock) IncidentID() string { return c.incidentID }
func (c *Clock) Position() float64  { return c.position }
func (c *Clock) Duration() float64  { return c.duration }
func (c *Clock) Playing() bool      { return c.playing }
func (c *Clock) Muted() bool        { return c.muted }

// Seek 跳转到绝对位置
func (c *Clock) Seek(seconds float64) {
	if !c.Loaded() {
		return
	}
	c.position = c.clamp(seconds)
}

// Tick 播放中按增量推进，到达末尾自动暂停
func (c *Clock) Tick(deltaSeconds float64) {
	if !c.Loaded() || !c.playing || deltaSeconds <= 0 {
		return
	}
	c.position = c.clamp(c.position + deltaSeconds)
	if c.position >= c.duration {
		c.playing = false
	}
}

func (c *Clock) SkipBackward() {
	c.Seek(c.position - c.step)
}

func (c *Clock) SkipForward() {
	c.Seek(c.position + c.step)
}

// TogglePlay 播放/暂停
func (c *Clock) TogglePlay() {
	if !c.Loaded() {
		return
	}
	c.playing = !c.playing
}

// ToggleMute 静音/取消静音
func (c *Clock) ToggleMute() {
	if !c.Loaded() {
		return
	}
	c.muted = !c.muted
}

func (c *Clock) clamp(v float64) float64 {
	return min(max(v, 0), c.duration)
}

// FormatTime 秒数格式化为 m:ss
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
