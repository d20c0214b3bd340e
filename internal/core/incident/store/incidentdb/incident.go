package incidentdb

import (
	"context"

	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ incident.IncidentStorer = Incident{}

// Incident Related business namespaces
type Incident DB

// stableOrder 最新的事件在前，同一时刻按 id 排，保证多次读取顺序一致
func stableOrder(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

// Find implements incident.IncidentStorer.
// 事件按天读取，数据量小，不做分页
func (i Incident) Find(ctx context.Context, bs *[]*incident.Incident, opts ...orm.QueryOption) error {
	db := i.db.WithContext(ctx).Model(new(incident.Incident))
	for _, fn := range opts {
		db = fn(db)
	}
	return stableOrder(db).Find(bs).Error
}

// Get implements incident.IncidentStorer.
func (i Incident) Get(ctx context.Context, b *incident.Incident, opts ...orm.QueryOption) error {
	db := i.db.WithContext(ctx)
	for _, fn := range opts {
		db = fn(db)
	}
	return db.First(b).Error
}

// Add implements incident.IncidentStorer.
func (i Incident) Add(ctx context.Context, b *incident.Incident) error {
	return i.db.WithContext(ctx).Create(b).Error
}

// Session implements incident.IncidentStorer.
func (i Incident) Session(ctx context.Context, changeFns ...func(*gorm.DB) error) error {
	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fn := range changeFns {
			if err := fn(tx); err != nil {
				return err
			}
		}
		return nil
	})
}
