package incident

import "context"

func CleanupExpiredIncidents(c Core, ctx context.Context, days int) int64 {
	return c.cleanupExpiredIncidents(ctx, days)
}
