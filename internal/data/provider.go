package data

import (
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/wire"
	"github.com/gowvp/securesight/internal/conf"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/system"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(SetupDB)

// SetupDB 初始化事件存储，sqlite 只允许一个连接
func SetupDB(c *conf.Bootstrap) (*gorm.DB, error) {
	cfg := c.Data.Database
	dial, isSQLite := getDialector(cfg.Dsn)
	if isSQLite {
		cfg.MaxIdleConns = 1
		cfg.MaxOpenConns = 1
	}
	return orm.New(dial, orm.Config{
		MaxIdleConns:    int(cfg.MaxIdleConns),
		MaxOpenConns:    int(cfg.MaxOpenConns),
		ConnMaxLifetime: cfg.ConnMaxLifetime.Duration(),
		SlowThreshold:   cfg.SlowThreshold.Duration(),
	})
}

// getDialector 按 dsn 前缀选择驱动，返回 dial 和是否 sqlite
func getDialector(dsn string) (gorm.Dialector, bool) {
	switch {
	case strings.HasPrefix(dsn, "postgres"):
		return postgres.New(postgres.Config{
			DriverName: "pgx",
			DSN:        dsn,
		}), false
	case strings.HasPrefix(dsn, "mysql://"):
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://")), false
	case dsn == ":memory:" || strings.HasPrefix(dsn, "file:"):
		return sqlite.Open(dsn), true
	default:
		if !filepath.IsAbs(dsn) {
			dsn = filepath.Join(system.Getwd(), dsn)
		}
		return sqlite.Open(dsn), true
	}
}
