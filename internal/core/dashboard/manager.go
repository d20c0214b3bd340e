// Package dashboard 操作员看板会话
//
// 每个会话持有一个选中状态存储和一个播放时钟，
// 列表、播放器、时间轴三个视图从同一份事件快照派生。
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/ixugo/goddd/pkg/conc"
	"github.com/ixugo/goddd/pkg/reason"
)

// Repository 看板读取事件的来源
type Repository interface {
	ListIncidents(ctx context.Context) ([]*incident.Incident, error)
	GetIncident(ctx context.Context, id string) (*incident.Incident, error)
}

// Manager 会话管理，会话只在内存中，重启即失效
type Manager struct {
	repo     Repository
	cfg      Config
	idle     time.Duration
	now      func() time.Time
	sessions conc.Map[string, *Session]
}

// ManagerOption 可选参数
type ManagerOption func(*Manager)

// WithClock 替换时间源，测试用
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIdleTimeout 会话空闲多久后回收，<=0 不回收
func WithIdleTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.idle = d
	}
}

// NewManager ...
func NewManager(repo Repository, cfg Config, opts ...ManagerOption) *Manager {
	m := Manager{repo: repo, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(&m)
	}
	return &m
}

// Create 创建会话
func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString(), m.cfg, m.now)
	m.sessions.Store(s.ID, s)
	return s
}

// Get 查询会话
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Load(id)
	if !ok {
		return nil, reason.ErrNotFound.SetMsg("会话不存在或已过期")
	}
	return s, nil
}

// Delete 关闭会话，不存在时忽略
func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
}

// Len 当前会话数
func (m *Manager) Len() int {
	var n int
	m.sessions.Range(func(string, *Session) bool {
		n++
		return true
	})
	return n
}

// Render 读取最新快照并派生视图
func (m *Manager) Render(ctx context.Context, s *Session) (*Views, error) {
	snapshot, err := m.repo.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}
	v := s.Render(snapshot)
	return &v, nil
}

// Select 按 id 选中事件，事件不存在时选中状态不变
func (m *Manager) Select(ctx context.Context, s *Session, incidentID string) error {
	inc, err := m.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return err
	}
	s.SelectIncident(inc)
	return nil
}

// StartSweeper 定期回收空闲会话，阻塞直到 ctx 结束
func (m *Manager) StartSweeper(ctx context.Context) {
	if m.idle <= 0 {
		return
	}
	interval := m.idle / 4
	if interval < time.Second {
		interval = time.Second
	}
	conc.Timer(ctx, interval, interval, func() {
		m.sweep(ctx)
	})
}

func (m *Manager) sweep(ctx context.Context) int {
	deadline := m.now().Add(-m.idle)
	var n int
	m.sessions.Range(func(id string, s *Session) bool {
		if s.IdleSince().Before(deadline) {
			m.sessions.Delete(id)
			n++
		}
		return true
	})
	if n > 0 {
		slog.InfoContext(ctx, "dashboard sessions expired", "count", n)
	}
	return n
}
