package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gowvp/securesight/internal/conf"
	"github.com/gowvp/securesight/internal/core/dashboard"
	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/gowvp/securesight/internal/core/incident/store/incidentdb"
	"github.com/gowvp/securesight/internal/data"
	"gorm.io/gorm"
)

type testEnv struct {
	conf *conf.Bootstrap
	db   *gorm.DB
	core incident.Core
	m    *dashboard.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	bc := conf.DefaultConfig()
	bc.Incident.RetainDays = 0
	core := incident.NewCore(incidentdb.NewDB(db).AutoMigrate(true))
	if err := data.SeedIncidents(context.Background(), core); err != nil {
		t.Fatal(err)
	}
	now := func() time.Time { return time.Date(2026, 1, 2, 14, 30, 0, 0, time.Local) }
	m := dashboard.NewManager(core, dashboard.Config{
		DefaultHour:       bc.Dashboard.DefaultHour,
		MinVisualWidthPct: bc.Dashboard.MinVisualWidthPct,
		ClipSeconds:       bc.Dashboard.ClipSeconds,
		SeekStepSeconds:   bc.Dashboard.SeekStepSeconds,
	}, dashboard.WithClock(now))
	return &testEnv{conf: &bc, db: db, core: core, m: m}
}

func (e *testEnv) usecase() *Usecase {
	return &Usecase{
		Conf:         e.conf,
		DB:           e.db,
		IncidentAPI:  NewIncidentAPI(e.core, e.conf),
		DashboardAPI: NewDashboardAPI(e.m),
		DetectionAPI: NewDetectionAPI(e.core),
	}
}

// router 只注册业务路由，不挂载全局指标中间件
func (e *testEnv) router() http.Handler {
	uc := e.usecase()
	g := gin.New()
	RegisterIncident(g, uc.IncidentAPI)
	RegisterDetection(g, uc.DetectionAPI)
	RegisterDashboard(g, uc.DashboardAPI)
	return g
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body == nil && method != http.MethodGet {
		body = struct{}{}
	}
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

func expectFail(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code < http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestIncidentEndpoints(t *testing.T) {
	h := newTestEnv(t).router()

	all := decode[findIncidentsOutput](t, do(t, h, http.MethodGet, "/incidents", nil))
	if all.Total != 5 || all.Items[0].ID != "1" {
		t.Fatalf("all = %+v", all)
	}

	warn := decode[findIncidentsOutput](t, do(t, h, http.MethodGet, "/incidents?severity=warning", nil))
	if warn.Total != 2 || warn.Items[0].ID != "2" || warn.Items[1].ID != "4" {
		t.Fatalf("warning = %+v", warn)
	}
	search := decode[findIncidentsOutput](t, do(t, h, http.MethodGet, "/incidents?q=LOBBY", nil))
	if search.Total != 1 || search.Items[0].ID != "5" {
		t.Fatalf("search = %+v", search)
	}
	expectFail(t, do(t, h, http.MethodGet, "/incidents?severity=urgent", nil))

	one := decode[incident.Incident](t, do(t, h, http.MethodGet, "/incidents/3", nil))
	if one.Title != "Loitering Detection" || one.Timestamp.String() != "14:15:33" {
		t.Fatalf("incident = %+v", one)
	}
	expectFail(t, do(t, h, http.MethodGet, "/incidents/404", nil))

	added := decode[incident.Incident](t, do(t, h, http.MethodPost, "/incidents", incident.AddIncidentInput{
		ID:        "6",
		Title:     "Glass Break",
		Timestamp: "14:50",
		Camera:    "Camera 06 - Warehouse",
		Severity:  "critical",
		IsNew:     true,
	}))
	if added.ID != "6" || added.Timestamp.String() != "14:50:00" {
		t.Fatalf("added = %+v", added)
	}
	dup := do(t, h, http.MethodPost, "/incidents", incident.AddIncidentInput{
		ID: "6", Title: "Glass Break", Timestamp: "14:50", Severity: "critical",
	})
	if dup.Code < http.StatusBadRequest || dup.Code >= http.StatusInternalServerError {
		t.Fatalf("duplicate id status = %d, body = %s", dup.Code, dup.Body.String())
	}
	expectFail(t, do(t, h, http.MethodPost, "/incidents", incident.AddIncidentInput{
		ID: "7", Title: "Bad", Timestamp: "14:50", Severity: "urgent",
	}))
	expectFail(t, do(t, h, http.MethodPost, "/incidents", incident.AddIncidentInput{
		ID: "8", Title: "Bad", Timestamp: "25:00", Severity: "info",
	}))
}

func TestIncidentPlaylist(t *testing.T) {
	h := newTestEnv(t).router()

	w := do(t, h, http.MethodGet, "/incidents/1/index.m3u8?token=abc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.apple.mpegurl" {
		t.Fatalf("content type = %s", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"#EXTM3U", "/static/incidents/1/000000.ts?token=abc", "/static/incidents/1/000019.ts?token=abc", "#EXT-X-ENDLIST"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in\n%s", want, body)
		}
	}
	if strings.Contains(body, "000020.ts") {
		t.Fatalf("too many segments\n%s", body)
	}

	expectFail(t, do(t, h, http.MethodGet, "/incidents/404/index.m3u8", nil))
}

func TestDetectionWebhook(t *testing.T) {
	env := newTestEnv(t)
	h := env.router()

	y, m, d := time.Now().Date()
	at := time.Date(y, m, d, 9, 15, 0, 0, time.Local)
	in := DetectionInput{
		CameraID:  "cam-9",
		Camera:    "Camera 09 - Dock",
		Location:  "Building C - Loading Dock",
		Timestamp: at.UnixMilli(),
		Detections: []Detection{
			{Label: "person", Confidence: 0.91},
			{Label: "weapon", Confidence: 0.5},
			{Label: "cat", Confidence: 0.1},
		},
	}
	out := decode[DetectionOutput](t, do(t, h, http.MethodPost, "/detections/events", in))
	if out.Code != 0 || len(out.IncidentIDs) != 2 {
		t.Fatalf("out = %+v", out)
	}

	wantTitles := []string{"Person Detected", "Weapon Detected"}
	for i, id := range out.IncidentIDs {
		inc, err := env.core.GetIncident(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if inc.Title != wantTitles[i] || inc.Severity != incident.SeverityWarning {
			t.Fatalf("incident = %+v", inc)
		}
		if inc.Timestamp.String() != "09:15:00" || inc.Camera != "Camera 09 - Dock" || !inc.IsNew {
			t.Fatalf("incident = %+v", inc)
		}
	}

	// 同一摄像头短时间内的回调被限流
	again := decode[DetectionOutput](t, do(t, h, http.MethodPost, "/detections/events", in))
	if len(again.IncidentIDs) != 0 {
		t.Fatalf("again = %+v", again)
	}

	expectFail(t, do(t, h, http.MethodPost, "/detections/events", DetectionInput{}))

	// 非当天的检测结果不入库
	stale := in
	stale.CameraID = "cam-10"
	stale.Timestamp = at.AddDate(0, 0, -1).UnixMilli()
	out = decode[DetectionOutput](t, do(t, h, http.MethodPost, "/detections/events", stale))
	if len(out.IncidentIDs) != 0 {
		t.Fatalf("stale = %+v", out)
	}
	all, err := env.core.ListIncidents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 7 {
		t.Fatalf("len = %d, want 7", len(all))
	}
}

func TestDetectionSeverity(t *testing.T) {
	tests := []struct {
		label      string
		confidence float64
		want       incident.Severity
	}{
		{label: "intrusion", confidence: 0.9, want: incident.SeverityCritical},
		{label: "Weapon", confidence: 0.7, want: incident.SeverityCritical},
		{label: "fire", confidence: 0.4, want: incident.SeverityWarning},
		{label: "door_open", confidence: 0.9, want: incident.SeverityWarning},
		{label: "vehicle", confidence: 0.9, want: incident.SeverityInfo},
		{label: "unknown", confidence: 0.9, want: incident.SeverityInfo},
	}
	for _, tc := range tests {
		if got := detectionSeverity(tc.label, tc.confidence); got != tc.want {
			t.Fatalf("%s(%v) = %s, want %s", tc.label, tc.confidence, got, tc.want)
		}
	}
	if got := detectionTitle("door_open"); got != "Door Open Detected" {
		t.Fatalf("title = %s", got)
	}
}

func TestDashboardSession(t *testing.T) {
	h := newTestEnv(t).router()

	created := decode[dashboard.Views](t, do(t, h, http.MethodPost, "/dashboard/sessions", nil))
	if created.SessionID == "" || !created.Player.Empty || created.Timeline.Hour != 14 {
		t.Fatalf("created = %+v", created)
	}
	base := "/dashboard/sessions/" + created.SessionID

	p := decode[dashboard.PlayerView](t, do(t, h, http.MethodGet, base+"/player", nil))
	if !p.Empty || p.Placeholder != "No Incident Selected" {
		t.Fatalf("player = %+v", p)
	}

	v := decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/select", selectIncidentInput{IncidentID: "1"}))
	if v.Player.Incident == nil || v.Player.Incident.ID != "1" || !v.List.Rows[0].Selected {
		t.Fatalf("views = %+v", v)
	}
	if v.Navbar.Alerts != 0 {
		t.Fatalf("alerts = %d", v.Navbar.Alerts)
	}
	expectFail(t, do(t, h, http.MethodPost, base+"/select", selectIncidentInput{IncidentID: "404"}))
	expectFail(t, do(t, h, http.MethodPost, base+"/select", selectIncidentInput{}))

	v = decode[dashboard.Views](t, do(t, h, http.MethodPut, base+"/filter", setFilterInput{Severity: "critical"}))
	if v.List.Filter != incident.Criterion(incident.SeverityCritical) {
		t.Fatalf("filter = %s", v.List.Filter)
	}
	l := decode[dashboard.ListView](t, do(t, h, http.MethodGet, base+"/list", nil))
	if len(l.Rows) != 1 || l.Rows[0].ID != "1" || l.ActiveCount != 4 {
		t.Fatalf("list = %+v", l)
	}
	expectFail(t, do(t, h, http.MethodPut, base+"/filter", setFilterInput{Severity: "urgent"}))

	v = decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/hour/prev", nil))
	if v.Timeline.Hour != 13 || len(v.Timeline.Events) != 0 {
		t.Fatalf("timeline = %+v", v.Timeline)
	}
	v = decode[dashboard.Views](t, do(t, h, http.MethodPut, base+"/hour", map[string]int{"hour": 99}))
	if v.Timeline.Hour != 23 || v.Timeline.CanNext {
		t.Fatalf("timeline = %+v", v.Timeline)
	}
	expectFail(t, do(t, h, http.MethodPut, base+"/hour", nil))

	v = decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/timeline/3/toggle", nil))
	if v.Timeline.Detail != nil {
		t.Fatal("detail outside window")
	}
	v = decode[dashboard.Views](t, do(t, h, http.MethodPut, base+"/hour", map[string]int{"hour": 14}))
	if v.Timeline.Detail == nil || v.Timeline.Detail.IncidentID != "3" {
		t.Fatalf("detail = %+v", v.Timeline.Detail)
	}
	if v.Timeline.NowPct == nil || *v.Timeline.NowPct != 50 {
		t.Fatalf("now = %v", v.Timeline.NowPct)
	}

	v = decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/player/forward", nil))
	if v.Player.Position != 10 || v.Player.PositionText != "0:10" {
		t.Fatalf("player = %+v", v.Player)
	}
	decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/player/play", nil))
	v = decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/player/tick", playerSecondsInput{Seconds: 2.5}))
	if !v.Player.Playing || v.Player.Position != 12.5 {
		t.Fatalf("player = %+v", v.Player)
	}
	v = decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/player/seek", playerSecondsInput{Seconds: -4}))
	if v.Player.Position != 0 {
		t.Fatalf("player = %+v", v.Player)
	}
	v = decode[dashboard.Views](t, do(t, h, http.MethodPost, base+"/player/mute", nil))
	if !v.Player.Muted {
		t.Fatalf("player = %+v", v.Player)
	}

	v = decode[dashboard.Views](t, do(t, h, http.MethodDelete, base+"/select", nil))
	if !v.Player.Empty {
		t.Fatalf("player = %+v", v.Player)
	}

	decode[gin.H](t, do(t, h, http.MethodDelete, base, nil))
	expectFail(t, do(t, h, http.MethodGet, base, nil))
	expectFail(t, do(t, h, http.MethodGet, "/dashboard/sessions/unknown/timeline", nil))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	env.conf.BuildVersion = "v0.0.1-test"
	h := NewHTTPHandler(env.usecase())

	out := decode[getHealthOutput](t, do(t, h, http.MethodGet, "/health", nil))
	if out.Version != "v0.0.1-test" || out.StartAt.IsZero() {
		t.Fatalf("health = %+v", out)
	}

	// 业务路由同样挂载在完整路由上
	all := decode[findIncidentsOutput](t, do(t, h, http.MethodGet, "/incidents", nil))
	if all.Total != 5 {
		t.Fatalf("total = %d", all.Total)
	}
	expectFail(t, do(t, h, http.MethodGet, "/nowhere", nil))
}

func TestWorkerContextCleanup(t *testing.T) {
	env := newTestEnv(t)
	ctx, cleanup := NewWorkerContext()
	m := NewDashboardManager(ctx, env.core, env.conf)
	m.Create()
	if ctx.Err() != nil {
		t.Fatal("worker context canceled before cleanup")
	}
	cleanup()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("cleanup did not cancel worker context")
	}
}
