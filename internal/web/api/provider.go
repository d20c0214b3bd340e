package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/gowvp/securesight/internal/conf"
	"github.com/gowvp/securesight/internal/core/dashboard"
	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/gowvp/securesight/internal/core/incident/store/incidentdb"
	"github.com/gowvp/securesight/internal/data"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/web"
	"gorm.io/gorm"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(Usecase), "*"),
	NewHTTPHandler,
	NewWorkerContext,
	NewIncidentStore, NewIncidentCore, NewIncidentAPI,
	NewDashboardManager, NewDashboardAPI,
	NewDetectionAPI,
)

type Usecase struct {
	Conf         *conf.Bootstrap
	DB           *gorm.DB
	IncidentAPI  IncidentAPI
	DashboardAPI DashboardAPI
	DetectionAPI DetectionAPI
}

// NewHTTPHandler 生成Gin框架路由内容
func NewHTTPHandler(uc *Usecase) http.Handler {
	cfg := uc.Conf.Server
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	// 如果启用了 Pprof，设置 Pprof 监控
	if cfg.HTTP.PProf.Enabled {
		web.SetupPProf(g, &cfg.HTTP.PProf.AccessIps)
	}

	setupRouter(g, uc)
	return g
}

// NewIncidentStore 事件存储
func NewIncidentStore(db *gorm.DB) incident.Storer {
	return incidentdb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate())
}

// WorkerContext 后台协程的生命周期，随 wire 的 cleanup 取消
type WorkerContext context.Context

// NewWorkerContext 清理任务与会话回收共用
func NewWorkerContext() (WorkerContext, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, cancel
}

// NewIncidentCore 创建事件核心服务，按配置写入演示数据并启动过期清理
func NewIncidentCore(ctx WorkerContext, store incident.Storer, cfg *conf.Bootstrap) incident.Core {
	core := incident.NewCore(store)
	if cfg.Incident.SeedDemo {
		if err := data.SeedIncidents(ctx, core); err != nil {
			slog.Error("seed incidents", "err", err)
		}
	}
	go core.StartCleanupWorker(ctx, cfg.Incident.RetainDays)
	return core
}

// NewDashboardManager 看板会话管理，启动空闲会话回收
func NewDashboardManager(ctx WorkerContext, core incident.Core, cfg *conf.Bootstrap) *dashboard.Manager {
	d := cfg.Dashboard
	m := dashboard.NewManager(core, dashboard.Config{
		DefaultHour:       d.DefaultHour,
		MinVisualWidthPct: d.MinVisualWidthPct,
		ClipSeconds:       d.ClipSeconds,
		SeekStepSeconds:   d.SeekStepSeconds,
	}, dashboard.WithIdleTimeout(d.SessionIdle.Duration()))
	go m.StartSweeper(ctx)
	return m
}
