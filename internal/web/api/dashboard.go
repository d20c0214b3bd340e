package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gowvp/securesight/internal/core/dashboard"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
)

// DashboardAPI 看板会话，每次意图提交后返回最新视图
type DashboardAPI struct {
	manager *dashboard.Manager
}

func NewDashboardAPI(m *dashboard.Manager) DashboardAPI {
	return DashboardAPI{manager: m}
}

func RegisterDashboard(g gin.IRouter, api DashboardAPI, handler ...gin.HandlerFunc) {
	sessions := g.Group("/dashboard/sessions", handler...)
	sessions.POST("", web.WrapH(api.createSession))

	group := sessions.Group("/:sid", api.loadSession)
	group.GET("", web.WrapH(api.getViews))
	group.DELETE("", web.WrapH(api.deleteSession))
	group.GET("/list", web.WrapH(api.getList))
	group.GET("/player", web.WrapH(api.getPlayer))
	group.GET("/timeline", web.WrapH(api.getTimeline))

	group.PUT("/filter", web.WrapH(api.setFilter))
	group.PUT("/search", web.WrapH(api.setSearch))

	group.POST("/hour/prev", web.WrapH(api.prevHour))
	group.POST("/hour/next", web.WrapH(api.nextHour))
	group.PUT("/hour", web.WrapH(api.setHour))

	group.POST("/select", web.WrapH(api.selectIncident))
	group.DELETE("/select", web.WrapH(api.clearSelection))
	group.POST("/timeline/:eid/toggle", web.WrapH(api.toggleDetail))

	group.POST("/player/seek", web.WrapH(api.seek))
	group.POST("/player/tick", web.WrapH(api.tick))
	for _, action := range []dashboard.PlayerAction{
		dashboard.ActionTogglePlay, dashboard.ActionToggleMute,
		dashboard.ActionForward, dashboard.ActionBackward,
	} {
		group.POST("/player/"+string(action), web.WrapH(api.control(action)))
	}
}

const sessionKey = "dashboard_session"

// loadSession 会话不存在时直接返回 404
func (a DashboardAPI) loadSession(c *gin.Context) {
	s, err := a.manager.Get(c.Param("sid"))
	if err != nil {
		web.Fail(c, err)
		c.Abort()
		return
	}
	c.Set(sessionKey, s)
	c.Next()
}

func session(c *gin.Context) *dashboard.Session {
	return c.MustGet(sessionKey).(*dashboard.Session)
}

func (a DashboardAPI) render(c *gin.Context) (*dashboard.Views, error) {
	return a.manager.Render(c.Request.Context(), session(c))
}

func (a DashboardAPI) createSession(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
	s := a.manager.Create()
	return a.manager.Render(c.Request.Context(), s)
}

func (a DashboardAPI) deleteSession(c *gin.Context, _ *struct{}) (gin.H, error) {
	a.manager.Delete(session(c).ID)
	return gin.H{"id": session(c).ID}, nil
}

func (a DashboardAPI) getViews(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
	return a.render(c)
}

func (a DashboardAPI) getList(c *gin.Context, _ *struct{}) (*dashboard.ListView, error) {
	v, err := a.render(c)
	if err != nil {
		return nil, err
	}
	return &v.List, nil
}

func (a DashboardAPI) getPlayer(c *gin.Context, _ *struct{}) (*dashboard.PlayerView, error) {
	v, err := a.render(c)
	if err != nil {
		return nil, err
	}
	return &v.Player, nil
}

func (a DashboardAPI) getTimeline(c *gin.Context, _ *struct{}) (*dashboard.TimelineView, error) {
	v, err := a.render(c)
	if err != nil {
		return nil, err
	}
	return &v.Timeline, nil
}

type setFilterInput struct {
	Severity string `json:"severity"` // all/critical/warning/info/resolved
}

func (a DashboardAPI) setFilter(c *gin.Context, in *setFilterInput) (*dashboard.Views, error) {
	if err := session(c).SetFilter(in.Severity); err != nil {
		return nil, err
	}
	return a.render(c)
}

type setSearchInput struct {
	Q string `json:"q"`
}

func (a DashboardAPI) setSearch(c *gin.Context, in *setSearchInput) (*dashboard.Views, error) {
	session(c).SetSearch(in.Q)
	return a.render(c)
}

func (a DashboardAPI) prevHour(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
	session(c).PrevHour()
	return a.render(c)
}

func (a DashboardAPI) nextHour(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
	session(c).NextHour()
	return a.render(c)
}

type setHourInput struct {
	Hour *int `json:"hour"`
}

func (a DashboardAPI) setHour(c *gin.Context, in *setHourInput) (*dashboard.Views, error) {
	if in.Hour == nil {
		return nil, reason.ErrBadRequest.Withf("hour is required")
	}
	session(c).SetHour(*in.Hour)
	return a.render(c)
}

type selectIncidentInput struct {
	IncidentID string `json:"incident_id"`
}

func (a DashboardAPI) selectIncident(c *gin.Context, in *selectIncidentInput) (*dashboard.Views, error) {
	if in.IncidentID == "" {
		return nil, reason.ErrBadRequest.Withf("incident_id is required")
	}
	if err := a.manager.Select(c.Request.Context(), session(c), in.IncidentID); err != nil {
		return nil, err
	}
	return a.render(c)
}

func (a DashboardAPI) clearSelection(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
	session(c).ClearSelection()
	return a.render(c)
}

func (a DashboardAPI) toggleDetail(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
	session(c).ToggleTimelineDetail(c.Param("eid"))
	return a.render(c)
}

type playerSecondsInput struct {
	Seconds float64 `json:"seconds"`
}

func (a DashboardAPI) seek(c *gin.Context, in *playerSecondsInput) (*dashboard.Views, error) {
	session(c).Seek(in.Seconds)
	return a.render(c)
}

func (a DashboardAPI) tick(c *gin.Context, in *playerSecondsInput) (*dashboard.Views, error) {
	session(c).Tick(in.Seconds)
	return a.render(c)
}

func (a DashboardAPI) control(action dashboard.PlayerAction) func(*gin.Context, *struct{}) (*dashboard.Views, error) {
	return func(c *gin.Context, _ *struct{}) (*dashboard.Views, error) {
		session(c).Control(action)
		return a.render(c)
	}
}
