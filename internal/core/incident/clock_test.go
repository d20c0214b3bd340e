package incident

import (
	"encoding/json"
	"testing"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "14:32:15", want: "14:32:15"},
		{in: "14:32", want: "14:32:00"},
		{in: "00:00:00", want: "00:00:00"},
		{in: "23:59:59", want: "23:59:59"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12:00:60", wantErr: true},
		{in: "9:05", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "+1:+5", wantErr: true},
		{in: "-1:05", wantErr: true},
		{in: "14: 5", wantErr: true},
		{in: "14:05:+9", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseClockTime(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got.String() != tt.want {
			t.Fatalf("ParseClockTime(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeJSON(t *testing.T) {
	in := Incident{ID: "1", Timestamp: MustClockTime("14:05:22"), Severity: SeverityResolved}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Incident
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out.Timestamp != in.Timestamp {
		t.Fatalf("Timestamp = %s, want %s", out.Timestamp, in.Timestamp)
	}
	if out.Timestamp.HHMM() != "14:05" {
		t.Fatalf("HHMM() = %s", out.Timestamp.HHMM())
	}
}

func TestClockTimeScan(t *testing.T) {
	var c ClockTime
	if err := c.Scan([]byte("08:09:10")); err != nil {
		t.Fatal(err)
	}
	if c.Hour() != 8 || c.Minute() != 9 || c.Second() != 10 {
		t.Fatalf("unexpected %s", c)
	}
	if err := c.Scan(42); err == nil {
		t.Fatal("expected error for int source")
	}
}
