package incident

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// StartCleanupWorker 启动定时清理协程，启动时执行一次，之后每天执行一次
// days 指定保留天数，超过该天数的事件将被删除；days<=0 不清理
func (c Core) StartCleanupWorker(ctx context.Context, days int) {
	if days <= 0 {
		slog.Info("incident cleanup disabled", "days", days)
		return
	}

	slog.Info("incident cleanup worker started", "retain_days", days)
	c.cleanupExpiredIncidents(ctx, days)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanupExpiredIncidents(ctx, days)
		}
	}
}

// cleanupExpiredIncidents 按入库时间删除过期事件
func (c Core) cleanupExpiredIncidents(ctx context.Context, days int) int64 {
	cutoff := c.now().AddDate(0, 0, -days)

	var deleted int64
	err := c.store.Incident().Session(ctx, func(tx *gorm.DB) error {
		result := tx.Where("created_at < ?", cutoff).Delete(&Incident{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		slog.Warn("failed to delete expired incidents", "cutoff_time", cutoff.Format(time.DateTime), "err", err)
		return 0
	}

	slog.Info("incident cleanup completed",
		"cutoff_time", cutoff.Format(time.DateTime),
		"incidents_deleted", deleted,
	)
	return deleted
}
