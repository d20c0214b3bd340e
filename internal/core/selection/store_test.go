package selection

import (
	"testing"

	"github.com/gowvp/securesight/internal/core/incident"
)

func TestSelectionStateMachine(t *testing.T) {
	s := NewStore()
	if _, ok := s.Selected(); ok {
		t.Fatal("initial state must be NoSelection")
	}

	a := &incident.Incident{ID: "A"}
	b := &incident.Incident{ID: "B"}

	s.SelectIncident(a)
	s.SelectIncident(b)
	got, ok := s.Selected()
	if !ok || got.ID != "B" {
		t.Fatalf("Selected() = %v, %v; want B", got, ok)
	}
	if s.IsSelected("A") || !s.IsSelected("B") {
		t.Fatal("IsSelected mismatch")
	}

	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Fatal("expected NoSelection after clear")
	}
	if s.SelectedID() != "" {
		t.Fatalf("SelectedID() = %q", s.SelectedID())
	}
}

func TestSelectThenClear(t *testing.T) {
	s := NewStore()
	s.SelectIncident(&incident.Incident{ID: "1"})
	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Fatal("expected NoSelection")
	}
}

func TestSelectNilClears(t *testing.T) {
	s := NewStore()
	s.SelectIncident(&incident.Incident{ID: "1"})
	s.SelectIncident(nil)
	if _, ok := s.Selected(); ok {
		t.Fatal("nil selection must clear")
	}
}

func TestToggleTimelineDetail(t *testing.T) {
	s := NewStore()

	s.ToggleTimelineDetail("X")
	s.ToggleTimelineDetail("X")
	if _, ok := s.ActiveDetail(); ok {
		t.Fatal("double toggle must collapse")
	}

	s.ToggleTimelineDetail("X")
	s.ToggleTimelineDetail("Y")
	id, ok := s.ActiveDetail()
	if !ok || id != "Y" {
		t.Fatalf("ActiveDetail() = %q, %v; want Y", id, ok)
	}

	// 详情展开与事件选中互不影响
	if _, ok := s.Selected(); ok {
		t.Fatal("toggling detail must not select an incident")
	}
	s.SelectIncident(&incident.Incident{ID: "Z"})
	if id, _ := s.ActiveDetail(); id != "Y" {
		t.Fatalf("selecting changed detail to %q", id)
	}
}

func TestIsNewAcknowledgedOnSelect(t *testing.T) {
	s := NewStore()
	inc := &incident.Incident{ID: "1", IsNew: true}
	old := &incident.Incident{ID: "2"}

	if !s.IsNew(inc) {
		t.Fatal("expected new before selection")
	}
	if s.IsNew(old) {
		t.Fatal("incident without flag reported new")
	}
	s.SelectIncident(inc)
	s.ClearSelection()
	if s.IsNew(inc) {
		t.Fatal("selection must acknowledge the incident")
	}
	if !inc.IsNew {
		t.Fatal("incident itself must not be mutated")
	}
}
