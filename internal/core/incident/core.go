package incident

import (
	"context"
	"time"

	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

// Storer data persistence
type Storer interface {
	Incident() IncidentStorer
}

// IncidentStorer 事件仓储，外部数据源
// Find 的返回顺序在一次会话内必须稳定，核心不会重新排序
type IncidentStorer interface {
	Find(context.Context, *[]*Incident, ...orm.QueryOption) error
	Get(context.Context, *Incident, ...orm.QueryOption) error
	Add(context.Context, *Incident) error
	Session(context.Context, ...func(*gorm.DB) error) error
}

// Core business domain
type Core struct {
	store Storer
	now   func() time.Time
}

type Option func(*Core)

// WithNow 替换时间源，决定“今天”的范围
func WithNow(now func() time.Time) Option {
	return func(c *Core) {
		c.now = now
	}
}

// NewCore create business domain
func NewCore(store Storer, opts ...Option) Core {
	c := Core{store: store, now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// startOfDay 本地时区当天零点
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsToday 事件时刻只在当天有意义
func IsToday(t, now time.Time) bool {
	day := startOfDay(now)
	return !t.Before(day) && t.Before(day.AddDate(0, 0, 1))
}
