package incident

import "time"

// Incident 摄像头检测到的安全事件
// 对看板核心来说是只读的，核心只做过滤与投影，不会修改事件本身
type Incident struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	Title           string    `gorm:"size:255;notNull;default:''" json:"title"`
	Description     string    `gorm:"size:1024;notNull;default:''" json:"description"`
	Timestamp       ClockTime `gorm:"column:timestamp;size:8;index" json:"timestamp"` // HH:MM:SS
	Camera          string    `gorm:"size:255;notNull;default:''" json:"camera"`
	Location        string    `gorm:"size:255;notNull;default:''" json:"location"`
	Severity        Severity  `gorm:"size:16;index" json:"severity"`
	DurationMinutes *float64  `gorm:"column:duration_minutes" json:"duration_minutes,omitempty"` // 事件持续分钟数，可为空
	IsNew           bool      `gorm:"column:is_new;notNull;default:false" json:"is_new"`         // 未被操作员确认
	CreatedAt       time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName database table name
func (*Incident) TableName() string {
	return "incidents"
}
