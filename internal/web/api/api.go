package api

import (
	"expvar"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"sort"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var startRuntime = time.Now()

func setupRouter(r *gin.Engine, uc *Usecase) {
	r.Use(
		// 格式化输出到控制台，然后记录到日志
		gin.CustomRecovery(func(c *gin.Context, err any) {
			slog.ErrorContext(c.Request.Context(), "panic", "err", err, "stack", string(debug.Stack()))
			c.AbortWithStatus(http.StatusInternalServerError)
		}),
		web.Metrics(),
		web.Logger(
			web.IgnoreMethod(http.MethodOptions),
			web.IgnorePrefix("/static/incidents"),
		),
		web.LoggerWithBody(web.DefaultBodyLimit,
			web.IgnoreBool(uc.Conf.Debug),
			web.IgnoreMethod(http.MethodOptions),
			web.IgnorePrefix("/static/incidents"),
		),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{".m3u8", ".ts"})),
	)
	go web.CountGoroutines(10*time.Minute, 20)

	r.Use(cors.New(cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Accept", "Content-Length", "Content-Type", "Range", "Accept-Language",
			"Origin", "Authorization", "Referer", "User-Agent",
			"Accept-Encoding", "Cache-Control", "X-Requested-With", "X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(_ string) bool {
			return true
		},
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "来到了无人的荒漠"})
	})

	r.GET("/health", web.WrapH(uc.getHealth))
	r.GET("/app/metrics/api", web.WrapH(uc.getMetricsAPI))

	RegisterIncident(r, uc.IncidentAPI)
	RegisterDetection(r, uc.DetectionAPI)
	RegisterDashboard(r, uc.DashboardAPI)
}

type hostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemTotal      uint64  `json:"mem_total"`
	MemUsed       uint64  `json:"mem_used"`
	MemUsePercent float64 `json:"mem_used_percent"`
}

type getHealthOutput struct {
	Version   string     `json:"version"`
	StartAt   time.Time  `json:"start_at"`
	GitBranch string     `json:"git_branch"`
	GitHash   string     `json:"git_hash"`
	Host      *hostStats `json:"host,omitempty"`
}

// getHealth 主机状态采集失败不影响健康检查
func (uc *Usecase) getHealth(c *gin.Context, _ *struct{}) (getHealthOutput, error) {
	out := getHealthOutput{
		Version:   uc.Conf.BuildVersion,
		StartAt:   startRuntime,
		GitBranch: expvarString("git_branch"),
		GitHash:   expvarString("git_hash"),
	}
	ctx := c.Request.Context()
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		slog.WarnContext(ctx, "read memory stats", "err", err)
		return out, nil
	}
	out.Host = &hostStats{
		MemTotal:      vm.Total,
		MemUsed:       vm.Used,
		MemUsePercent: vm.UsedPercent,
	}
	if p, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(p) > 0 {
		out.Host.CPUPercent = p[0]
	}
	return out, nil
}

type getMetricsAPIOutput struct {
	RealTimeRequests int64  `json:"real_time_requests"` // 实时请求数
	TotalRequests    int64  `json:"total_requests"`     // 总请求数
	TotalResponses   int64  `json:"total_responses"`    // 总响应数
	RequestTop10     []KV   `json:"request_top10"`      // 请求TOP10
	StatusCodeTop10  []KV   `json:"status_code_top10"`  // 状态码TOP10
	Goroutines       any    `json:"goroutines"`         // 协程数量
	NumGC            uint32 `json:"num_gc"`             // gc 次数
	SysAlloc         uint64 `json:"sys_alloc"`          // 内存占用
	StartAt          string `json:"start_at"`           // 运行时间
}

func (uc *Usecase) getMetricsAPI(_ *gin.Context, _ *struct{}) (*getMetricsAPIOutput, error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	out := getMetricsAPIOutput{
		RealTimeRequests: expvarInt("request"),
		TotalRequests:    expvarInt("requests"),
		TotalResponses:   expvarInt("responses"),
		RequestTop10:     sortExpvarMap("requestURLs", 10),
		StatusCodeTop10:  sortExpvarMap("statusCodes", 10),
		NumGC:            stats.NumGC,
		SysAlloc:         stats.Sys,
		StartAt:          startRuntime.Format(time.DateTime),
	}
	if g, ok := expvar.Get("goroutine_num").(expvar.Func); ok {
		out.Goroutines = g()
	}
	return &out, nil
}

func expvarString(name string) string {
	v, ok := expvar.Get(name).(*expvar.String)
	if !ok {
		return ""
	}
	return v.Value()
}

func expvarInt(name string) int64 {
	v, ok := expvar.Get(name).(*expvar.Int)
	if !ok {
		return 0
	}
	return v.Value()
}

type KV struct {
	Key   string
	Value int64
}

func sortExpvarMap(name string, top int) []KV {
	kvs := make([]KV, 0, 8)
	data, ok := expvar.Get(name).(*expvar.Map)
	if !ok {
		return kvs
	}
	data.Do(func(kv expvar.KeyValue) {
		v, ok := kv.Value.(*expvar.Int)
		if !ok {
			return
		}
		kvs = append(kvs, KV{Key: kv.Key, Value: v.Value()})
	})

	sort.Slice(kvs, func(i, j int) bool {
		return kvs[i].Value > kvs[j].Value
	})
	return kvs[:min(top, len(kvs))]
}
