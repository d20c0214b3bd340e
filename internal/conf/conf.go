package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfig 默认配置
func DefaultConfig() Bootstrap {
	return Bootstrap{
		Server: Server{
			HTTP: ServerHTTP{
				Port:    15123,
				Timeout: Duration(60 * time.Second),
				PProf: PProf{
					AccessIps: []string{"::1", "127.0.0.1"},
				},
			},
		},
		Data: Data{
			Database: Database{
				Dsn:             "./configs/data.db",
				MaxIdleConns:    10,
				MaxOpenConns:    50,
				ConnMaxLifetime: Duration(6 * time.Hour),
				SlowThreshold:   Duration(200 * time.Millisecond),
			},
		},
		Log: Log{Level: "info"},
		Dashboard: Dashboard{
			DefaultHour:       14,
			MinVisualWidthPct: 1.0,
			ClipSeconds:       120,
			SeekStepSeconds:   10,
			SegmentSeconds:    6,
			SessionIdle:       Duration(2 * time.Hour),
		},
		Incident: Incident{
			RetainDays: 30,
			SeedDemo:   true,
		},
	}
}

// SetupConfig 读取配置文件，文件不存在时使用默认配置并写入磁盘
func SetupConfig(path string) (Bootstrap, error) {
	bc := DefaultConfig()
	bc.ConfigPath = path

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return bc, WriteConfig(&bc, path)
	}
	if err != nil {
		return bc, err
	}
	if err := toml.Unmarshal(b, &bc); err != nil {
		return bc, fmt.Errorf("parse %s: %w", path, err)
	}
	bc.normalize()
	return bc, nil
}

// WriteConfig 将配置写回文件
func WriteConfig(bc *Bootstrap, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := toml.Marshal(bc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// normalize 修正越界的配置项，避免看板状态出现非法值
func (bc *Bootstrap) normalize() {
	d := &bc.Dashboard
	d.DefaultHour = min(max(d.DefaultHour, 0), 23)
	if d.MinVisualWidthPct <= 0 || d.MinVisualWidthPct > 100 {
		d.MinVisualWidthPct = 1.0
	}
	if d.ClipSeconds <= 0 {
		d.ClipSeconds = 120
	}
	if d.SeekStepSeconds <= 0 {
		d.SeekStepSeconds = 10
	}
	if d.SegmentSeconds <= 0 {
		d.SegmentSeconds = 6
	}
	if d.SessionIdle <= 0 {
		d.SessionIdle = Duration(2 * time.Hour)
	}
}
