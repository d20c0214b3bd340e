package timeline

import "fmt"

const (
	MinHour = 0
	MaxHour = 23
)

// ClampHour 将小时限制在 [0,23]
func ClampHour(hour int) int {
	return min(max(hour, MinHour), MaxHour)
}

// Advance 前后翻动时间窗口，越界时保持不变
func Advance(hour, delta int) int {
	return ClampHour(ClampHour(hour) + delta)
}

func PrevHour(hour int) int { return Advance(hour, -1) }

func NextHour(hour int) int { return Advance(hour, 1) }

// FormatHour 08:00
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// WindowLabel 14:00 - 15:00
func WindowLabel(hour int) string {
	return FormatHour(hour) + " - " + FormatHour(hour+1)
}
