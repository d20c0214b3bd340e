package incident

// FindIncidentInput 列表查询参数
type FindIncidentInput struct {
	Severity string `form:"severity"` // all/critical/warning/info/resolved，空表示 all
	Q        string `form:"q"`        // 标题/摄像头/位置 模糊搜索
}

// AddIncidentInput 外部数据源写入事件
type AddIncidentInput struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Timestamp       string   `json:"timestamp"` // HH:MM:SS 或 HH:MM
	Camera          string   `json:"camera"`
	Location        string   `json:"location"`
	Severity        string   `json:"severity"`
	DurationMinutes *float64 `json:"duration_minutes"`
	IsNew           bool     `json:"is_new"`
}
