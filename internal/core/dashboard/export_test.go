package dashboard

import "context"

// Sweep 暴露给测试
func (m *Manager) Sweep(ctx context.Context) int {
	return m.sweep(ctx)
}
