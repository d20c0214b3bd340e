// Package selection 看板中“当前选中事件”的唯一数据源
//
// 列表、播放器、时间轴三个视图只依赖 Store，不互相调用。
// 事件选中是跨视图状态；时间轴详情展开只属于时间轴视图，两者相互独立。
package selection

import "github.com/gowvp/securesight/internal/core/incident"

// Store 会话级选中状态，初始为未选中，不持久化
type Store struct {
	selected     *incident.Incident
	activeDetail string
	acknowledged map[string]struct{}
}

// NewStore 初始状态 NoSelection
func NewStore() *Store {
	return &Store{acknowledged: make(map[string]struct{})}
}

// SelectIncident 直接替换当前选中，不经过未选中状态；同时确认该事件，清除 NEW 标记
func (s *Store) SelectIncident(inc *incident.Incident) {
	if inc == nil {
		s.ClearSelection()
		return
	}
	v := *inc
	s.selected = &v
	s.acknowledged[inc.ID] = struct{}{}
}

// ClearSelection 回到未选中
func (s *Store) ClearSelection() {
	s.selected = nil
}

// Selected 当前选中的事件快照
func (s *Store) Selected() (*incident.Incident, bool) {
	return s.selected, s.selected != nil
}

// SelectedID 未选中时返回空字符串
func (s *Store) SelectedID() string {
	if s.selected == nil {
		return ""
	}
	return s.selected.ID
}

// IsSelected 判断是否为当前选中的事件
func (s *Store) IsSelected(id string) bool {
	return s.selected != nil && s.selected.ID == id
}

// ToggleTimelineDetail 已展开则收起，否则展开并替换之前展开的事件
func (s *Store) ToggleTimelineDetail(eventID string) {
	if s.activeDetail == eventID {
		s.activeDetail = ""
		return
	}
	s.activeDetail = eventID
}

// ActiveDetail 当前展开详情的时间轴事件
func (s *Store) ActiveDetail() (string, bool) {
	return s.activeDetail, s.activeDetail != ""
}

// IsNew 事件未被操作员确认；事件本身不会被修改
func (s *Store) IsNew(inc *incident.Incident) bool {
	if !inc.IsNew {
		return false
	}
	_, ok := s.acknowledged[inc.ID]
	return !ok
}
