package incidentdb

import (
	"github.com/gowvp/securesight/internal/core/incident"
	"gorm.io/gorm"
)

var _ incident.Storer = DB{}

// DB Related business namespaces
type DB struct {
	db *gorm.DB
}

// NewDB instance object
func NewDB(db *gorm.DB) DB {
	return DB{db: db}
}

// Incident Get business instance
func (d DB) Incident() incident.IncidentStorer {
	return (Incident)(d)
}

// AutoMigrate sync database
func (d DB) AutoMigrate(ok bool) DB {
	if !ok {
		return d
	}
	if err := d.db.AutoMigrate(
		new(incident.Incident),
	); err != nil {
		panic(err)
	}
	return d
}
