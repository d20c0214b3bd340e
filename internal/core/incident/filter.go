package incident

import "strings"

// Filter 按等级过滤，保持输入顺序，不去重也不做额外删减
func Filter(incidents []*Incident, c Criterion) []*Incident {
	out := make([]*Incident, 0, len(incidents))
	for _, v := range incidents {
		if c.Match(v.Severity) {
			out = append(out, v)
		}
	}
	return out
}

// Search 标题、摄像头、位置任意一项包含关键字即命中，忽略大小写
func Search(incidents []*Incident, q string) []*Incident {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return incidents
	}
	out := make([]*Incident, 0, len(incidents))
	for _, v := range incidents {
		if strings.Contains(strings.ToLower(v.Title), q) ||
			strings.Contains(strings.ToLower(v.Camera), q) ||
			strings.Contains(strings.ToLower(v.Location), q) {
			out = append(out, v)
		}
	}
	return out
}

// CountActive 未关闭事件数量
func CountActive(incidents []*Incident) int {
	var n int
	for _, v := range incidents {
		if v.Severity.IsActive() {
			n++
		}
	}
	return n
}
