package dashboard

import (
	"sync"
	"time"

	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/gowvp/securesight/internal/core/player"
	"github.com/gowvp/securesight/internal/core/selection"
	"github.com/gowvp/securesight/internal/core/timeline"
)

// Config 新会话的初始参数
type Config struct {
	DefaultHour       int
	MinVisualWidthPct float64
	ClipSeconds       int
	SeekStepSeconds   int
}

// Session 一个操作员的看板状态：过滤条件、时间窗口、选中状态、播放进度
// 视图只通过 Session 提交意图，不直接修改共享状态
type Session struct {
	ID string

	mu        sync.Mutex
	criterion incident.Criterion
	query     string
	hour      int
	selection *selection.Store
	clock     *player.Clock
	projector timeline.Projector
	now       func() time.Time
	touchedAt time.Time
}

// NewSession 初始为 all 过滤、默认小时、未选中
func NewSession(id string, cfg Config, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:        id,
		criterion: incident.CriterionAll,
		hour:      timeline.ClampHour(cfg.DefaultHour),
		selection: selection.NewStore(),
		clock:     player.NewClock(cfg.ClipSeconds, cfg.SeekStepSeconds),
		projector: timeline.NewProjector(cfg.MinVisualWidthPct),
		now:       now,
		touchedAt: now(),
	}
}

func (s *Session) lock() func() {
	s.mu.Lock()
	s.touchedAt = s.now()
	return s.mu.Unlock
}

// IdleSince 最近一次操作的时间
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// SetFilter 过滤条件在此处校验，只接受封闭集合
func (s *Session) SetFilter(raw string) error {
	c, err := incident.ParseCriterion(raw)
	if err != nil {
		return err
	}
	defer s.lock()()
	s.criterion = c
	return nil
}

func (s *Session) Filter() incident.Criterion {
	defer s.lock()()
	return s.criterion
}

func (s *Session) SetSearch(q string) {
	defer s.lock()()
	s.query = q
}

// PrevHour 到 0 点后保持不变
func (s *Session) PrevHour() int {
	defer s.lock()()
	s.hour = timeline.PrevHour(s.hour)
	return s.hour
}

// NextHour 到 23 点后保持不变
func (s *Session) NextHour() int {
	defer s.lock()()
	s.hour = timeline.NextHour(s.hour)
	return s.hour
}

// SetHour 直接跳转，越界值被限制在 [0,23]
func (s *Session) SetHour(hour int) int {
	defer s.lock()()
	s.hour = timeline.ClampHour(hour)
	return s.hour
}

func (s *Session) Hour() int {
	defer s.lock()()
	return s.hour
}

// SelectIncident 替换选中，播放器切换到新事件并重置进度
func (s *Session) SelectIncident(inc *incident.Incident) {
	defer s.lock()()
	if inc == nil {
		s.selection.ClearSelection()
		s.clock.Unload()
		return
	}
	s.selection.SelectIncident(inc)
	s.clock.Load(inc.ID)
}

// ClearSelection 播放器回到占位状态
func (s *Session) ClearSelection() {
	defer s.lock()()
	s.selection.ClearSelection()
	s.clock.Unload()
}

// SelectedID 未选中时为空
func (s *Session) SelectedID() string {
	defer s.lock()()
	return s.selection.SelectedID()
}

// ToggleTimelineDetail 时间轴详情展开/收起，与事件选中无关
func (s *Session) ToggleTimelineDetail(eventID string) {
	defer s.lock()()
	s.selection.ToggleTimelineDetail(eventID)
}

// PlayerAction 播放器控制
type PlayerAction string

const (
	ActionTogglePlay PlayerAction = "play"
	ActionToggleMute PlayerAction = "mute"
	ActionForward    PlayerAction = "forward"
	ActionBackward   PlayerAction = "backward"
)

// Control 执行播放器控制，未选中事件时无效果
func (s *Session) Control(action PlayerAction) {
	defer s.lock()()
	switch action {
	case ActionTogglePlay:
		s.clock.TogglePlay()
	case ActionToggleMute:
		s.clock.ToggleMute()
	case ActionForward:
		s.clock.SkipForward()
	case ActionBackward:
		s.clock.SkipBackward()
	}
}

// Seek 拖动进度条
func (s *Session) Seek(seconds float64) {
	defer s.lock()()
	s.clock.Seek(seconds)
}

// Tick 播放中的周期推进
func (s *Session) Tick(deltaSeconds float64) {
	defer s.lock()()
	s.clock.Tick(deltaSeconds)
}

// Render 基于同一份快照派生全部视图
func (s *Session) Render(snapshot []*incident.Incident) Views {
	defer s.lock()()
	return Views{
		SessionID: s.ID,
		Navbar:    BuildNavbarView(snapshot, s.query, s.selection),
		List:      BuildListView(snapshot, s.criterion, s.query, s.selection),
		Player:    BuildPlayerView(s.selection, s.clock),
		Timeline:  BuildTimelineView(snapshot, s.hour, s.projector, s.selection, s.now()),
	}
}
