package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gowvp/securesight/internal/conf"
	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/gowvp/securesight/internal/core/player"
	"github.com/ixugo/goddd/pkg/web"
)

// IncidentAPI 事件仓储的 http 出入口
type IncidentAPI struct {
	incidentCore incident.Core
	conf         *conf.Bootstrap
}

func NewIncidentAPI(core incident.Core, conf *conf.Bootstrap) IncidentAPI {
	return IncidentAPI{incidentCore: core, conf: conf}
}

func RegisterIncident(g gin.IRouter, api IncidentAPI, handler ...gin.HandlerFunc) {
	{
		group := g.Group("/incidents", handler...)
		group.GET("", web.WrapH(api.findIncidents))
		group.POST("", web.WrapH(api.addIncident))
		group.GET("/:id", web.WrapH(api.getIncident))
		// 事件回放 HLS 播放列表
		group.GET("/:id/index.m3u8", api.incidentPlaylist)
	}

	if dir := api.conf.Dashboard.MediaDir; dir != "" {
		slog.Info("注册事件回放静态文件服务", "path", "/static/incidents", "dir", dir)
		g.Static("/static/incidents", dir)
	}
}

type findIncidentsOutput struct {
	Items []*incident.Incident `json:"items"`
	Total int                  `json:"total"`
}

func (a IncidentAPI) findIncidents(c *gin.Context, in *incident.FindIncidentInput) (*findIncidentsOutput, error) {
	items, err := a.incidentCore.FindIncidents(c.Request.Context(), in)
	if err != nil {
		return nil, err
	}
	return &findIncidentsOutput{Items: items, Total: len(items)}, nil
}

func (a IncidentAPI) getIncident(c *gin.Context, _ *struct{}) (*incident.Incident, error) {
	return a.incidentCore.GetIncident(c.Request.Context(), c.Param("id"))
}

func (a IncidentAPI) addIncident(c *gin.Context, in *incident.AddIncidentInput) (*incident.Incident, error) {
	return a.incidentCore.AddIncident(c.Request.Context(), in)
}

// incidentPlaylist 生成事件回放 m3u8
// 路径: /incidents/:id/index.m3u8?token=xxx
func (a IncidentAPI) incidentPlaylist(c *gin.Context) {
	inc, err := a.incidentCore.GetIncident(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Fail(c, err)
		return
	}
	body, err := player.Playlist(player.PlaylistInput{
		IncidentID:     inc.ID,
		ClipSeconds:    a.conf.Dashboard.ClipSeconds,
		SegmentSeconds: a.conf.Dashboard.SegmentSeconds,
		Token:          c.Query("token"),
	})
	if err != nil {
		web.Fail(c, err)
		return
	}
	c.Header("Content-Type", "application/vnd.apple.mpegurl")
	c.Header("Cache-Control", "no-cache")
	c.String(http.StatusOK, body)
}
