package data

import (
	"context"
	"log/slog"

	"github.com/gowvp/securesight/internal/core/incident"
)

// SeedIncidents 当天没有事件时写入演示事件，已有数据则跳过
// 演示事件 id 固定，前几天写入的同 id 事件会被覆盖为当天
func SeedIncidents(ctx context.Context, core incident.Core) error {
	items, err := core.ListIncidents(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		slog.DebugContext(ctx, "incidents exist, skip seeding", "count", len(items))
		return nil
	}

	demo := incident.DemoIncidents()
	if err := core.ReplaceIncidents(ctx, demo); err != nil {
		return err
	}
	slog.InfoContext(ctx, "demo incidents seeded", "count", len(demo))
	return nil
}
