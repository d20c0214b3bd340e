package dashboard

import (
	"fmt"
	"time"

	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/gowvp/securesight/internal/core/player"
	"github.com/gowvp/securesight/internal/core/selection"
	"github.com/gowvp/securesight/internal/core/timeline"
)

const (
	placeholderTitle   = "No Incident Selected"
	placeholderMessage = "Select an incident to view"
)

// Views 同一份快照派生出的全部视图
type Views struct {
	SessionID string       `json:"session_id"`
	Navbar    NavbarView   `json:"navbar"`
	List      ListView     `json:"list"`
	Player    PlayerView   `json:"player"`
	Timeline  TimelineView `json:"timeline"`
}

// NavbarView 顶栏告警数为未确认的新事件数量
type NavbarView struct {
	Alerts int    `json:"alerts"`
	Query  string `json:"query"`
}

// FilterOption 过滤下拉选项
type FilterOption struct {
	Value incident.Criterion `json:"value"`
	Label string             `json:"label"`
}

// FilterOptions 过滤条件的封闭集合
var FilterOptions = []FilterOption{
	{Value: incident.CriterionAll, Label: "All Incidents"},
	{Value: incident.Criterion(incident.SeverityCritical), Label: "Critical Only"},
	{Value: incident.Criterion(incident.SeverityWarning), Label: "Warnings Only"},
	{Value: incident.Criterion(incident.SeverityInfo), Label: "Info Only"},
	{Value: incident.Criterion(incident.SeverityResolved), Label: "Resolved Only"},
}

// ListRow 列表中的一行
type ListRow struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Timestamp     string            `json:"timestamp"`
	Camera        string            `json:"camera"`
	Location      string            `json:"location"`
	Severity      incident.Severity `json:"severity"`
	SeverityLabel string            `json:"severity_label"`
	IsNew         bool              `json:"is_new"`
	Selected      bool              `json:"selected"`
}

// ListView 事件列表，ActiveCount 基于完整快照，不受过滤影响
type ListView struct {
	Filter      incident.Criterion `json:"filter"`
	Query       string             `json:"query"`
	Options     []FilterOption     `json:"options"`
	ActiveCount int                `json:"active_count"`
	Total       int                `json:"total"`
	Rows        []ListRow          `json:"rows"`
}

// PlayerIncident 播放器头部信息
type PlayerIncident struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Camera        string            `json:"camera"`
	Location      string            `json:"location"`
	Timestamp     string            `json:"timestamp"`
	Severity      incident.Severity `json:"severity"`
	SeverityLabel string            `json:"severity_label"`
}

// PlayerView 未选中时 Empty 为 true，只展示占位文字，控件不可用
type PlayerView struct {
	Empty           bool            `json:"empty"`
	Placeholder     string          `json:"placeholder,omitempty"`
	Message         string          `json:"message,omitempty"`
	Incident        *PlayerIncident `json:"incident,omitempty"`
	PlaylistURL     string          `json:"playlist_url,omitempty"`
	Position        float64         `json:"position"`
	Duration        float64         `json:"duration"`
	PositionText    string          `json:"position_text"`
	DurationText    string          `json:"duration_text"`
	Playing         bool            `json:"playing"`
	Muted           bool            `json:"muted"`
	ControlsEnabled bool            `json:"controls_enabled"`
}

// TimelineEvent 时间轴上的条目
type TimelineEvent struct {
	timeline.Event
	Expanded bool `json:"expanded"`
	Selected bool `json:"selected"`
}

// TimelineDetail 展开的详情面板
type TimelineDetail struct {
	IncidentID      string            `json:"incident_id"`
	Title           string            `json:"title"`
	Time            string            `json:"time"`
	DurationMinutes *float64          `json:"duration_minutes,omitempty"`
	Severity        incident.Severity `json:"severity"`
	SeverityLabel   string            `json:"severity_label"`
}

// TimelineView 某个小时窗口
type TimelineView struct {
	Hour        int             `json:"hour"`
	WindowLabel string          `json:"window_label"`
	CanPrev     bool            `json:"can_prev"`
	CanNext     bool            `json:"can_next"`
	Ruler       []string        `json:"ruler"`
	GridLines   []float64       `json:"grid_lines"`
	NowPct      *float64        `json:"now_pct,omitempty"`
	Events      []TimelineEvent `json:"events"`
	Detail      *TimelineDetail `json:"detail,omitempty"`
}

// BuildNavbarView 告警数统计所有未确认的新事件
func BuildNavbarView(snapshot []*incident.Incident, query string, sel *selection.Store) NavbarView {
	var alerts int
	for _, v := range snapshot {
		if sel.IsNew(v) {
			alerts++
		}
	}
	return NavbarView{Alerts: alerts, Query: query}
}

// BuildListView 先过滤再搜索，保持快照顺序
func BuildListView(snapshot []*incident.Incident, c incident.Criterion, query string, sel *selection.Store) ListView {
	items := incident.Search(incident.Filter(snapshot, c), query)
	rows := make([]ListRow, 0, len(items))
	for _, v := range items {
		rows = append(rows, ListRow{
			ID:            v.ID,
			Title:         v.Title,
			Description:   v.Description,
			Timestamp:     v.Timestamp.String(),
			Camera:        v.Camera,
			Location:      v.Location,
			Severity:      v.Severity,
			SeverityLabel: v.Severity.Label(),
			IsNew:         sel.IsNew(v),
			Selected:      sel.IsSelected(v.ID),
		})
	}
	return ListView{
		Filter:      c,
		Query:       query,
		Options:     FilterOptions,
		ActiveCount: incident.CountActive(snapshot),
		Total:       len(snapshot),
		Rows:        rows,
	}
}

// BuildPlayerView 播放器只读取选中状态和自己的进度时钟
func BuildPlayerView(sel *selection.Store, clock *player.Clock) PlayerView {
	inc, ok := sel.Selected()
	if !ok {
		return PlayerView{
			Empty:        true,
			Placeholder:  placeholderTitle,
			Message:      placeholderMessage,
			Duration:     clock.Duration(),
			PositionText: player.FormatTime(0),
			DurationText: player.FormatTime(clock.Duration()),
		}
	}
	return PlayerView{
		Incident: &PlayerIncident{
			ID:            inc.ID,
			Title:         inc.Title,
			Camera:        inc.Camera,
			Location:      inc.Location,
			Timestamp:     inc.Timestamp.String(),
			Severity:      inc.Severity,
			SeverityLabel: inc.Severity.Label(),
		},
		PlaylistURL:     PlaylistURL(inc.ID),
		Position:        clock.Position(),
		Duration:        clock.Duration(),
		PositionText:    player.FormatTime(clock.Position()),
		DurationText:    player.FormatTime(clock.Duration()),
		Playing:         clock.Playing(),
		Muted:           clock.Muted(),
		ControlsEnabled: true,
	}
}

// PlaylistURL 事件回放的 m3u8 地址
func PlaylistURL(incidentID string) string {
	return fmt.Sprintf("/incidents/%s/index.m3u8", incidentID)
}

// BuildTimelineView 时间轴不受列表过滤和搜索影响
// 详情面板只在展开的事件出现在当前窗口时显示
func BuildTimelineView(snapshot []*incident.Incident, hour int, p timeline.Projector, sel *selection.Store, now time.Time) TimelineView {
	hour = timeline.ClampHour(hour)
	active, hasActive := sel.ActiveDetail()

	events := p.Build(snapshot, hour)
	out := TimelineView{
		Hour:        hour,
		WindowLabel: timeline.WindowLabel(hour),
		CanPrev:     hour > timeline.MinHour,
		CanNext:     hour < timeline.MaxHour,
		Ruler:       timeline.Ruler(hour),
		GridLines:   timeline.GridLines(),
		Events:      make([]TimelineEvent, 0, len(events)),
	}
	if pct, ok := timeline.NowIndicator(now, hour); ok {
		out.NowPct = &pct
	}
	for _, e := range events {
		expanded := hasActive && e.IncidentID == active
		out.Events = append(out.Events, TimelineEvent{
			Event:    e,
			Expanded: expanded,
			Selected: sel.IsSelected(e.IncidentID),
		})
		if expanded {
			out.Detail = &TimelineDetail{
				IncidentID:      e.IncidentID,
				Title:           e.Title,
				Time:            e.Time,
				DurationMinutes: e.DurationMinutes,
				Severity:        e.Severity,
				SeverityLabel:   e.Severity.Label(),
			}
		}
	}
	return out
}
