package api

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gowvp/securesight/internal/core/incident"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minConfidence 低于该置信度的检测结果直接丢弃
const minConfidence = 0.3

// labelSeverity 检测类别对应的事件等级，未列出的类别为 info
var labelSeverity = map[string]incident.Severity{
	"intrusion": incident.SeverityCritical,
	"weapon":    incident.SeverityCritical,
	"fire":      incident.SeverityCritical,
	"smoke":     incident.SeverityWarning,
	"person":    incident.SeverityWarning,
	"door_open": incident.SeverityWarning,
	"motion":    incident.SeverityWarning,
	"vehicle":   incident.SeverityInfo,
	"loitering": incident.SeverityInfo,
}

// DetectionAPI 接收摄像头分析服务的检测回调，转换为事件
type DetectionAPI struct {
	log          *slog.Logger
	limiter      func(identifier string) bool
	incidentCore incident.Core
}

func NewDetectionAPI(core incident.Core) DetectionAPI {
	return DetectionAPI{
		log:          slog.With("hook", "detection"),
		incidentCore: core,
		limiter:      web.IDRateLimiter(0.2, 1, 3*time.Minute),
	}
}

// RegisterDetection 注册检测回调路由
func RegisterDetection(r gin.IRouter, api DetectionAPI, handler ...gin.HandlerFunc) {
	group := r.Group("/detections", handler...)
	group.POST("/events", web.WrapH(api.onEvents))
}

// onEvents 每个检测对象生成一条独立事件，同一摄像头按频率限流
func (a DetectionAPI) onEvents(c *gin.Context, in *DetectionInput) (DetectionOutput, error) {
	if strings.TrimSpace(in.CameraID) == "" {
		return DetectionOutput{}, reason.ErrBadRequest.Withf("camera_id is required")
	}
	ctx := c.Request.Context()

	// 事件只记录时刻，非当天的检测结果无法正确展示，直接丢弃
	now := time.Now()
	at := now
	if in.Timestamp > 0 {
		at = time.UnixMilli(in.Timestamp).In(time.Local)
	}
	if !incident.IsToday(at, now) {
		a.log.WarnContext(ctx, "detection not from today, dropped", "camera_id", in.CameraID, "timestamp", at.Format(time.DateTime))
		return newDetectionOutputOK(nil), nil
	}

	if !a.limiter(in.CameraID) {
		a.log.DebugContext(ctx, "detection throttled", "camera_id", in.CameraID)
		return newDetectionOutputOK(nil), nil
	}
	camera := in.Camera
	if camera == "" {
		camera = in.CameraID
	}

	ids := make([]string, 0, len(in.Detections))
	for i, det := range in.Detections {
		a.log.InfoContext(ctx, "detection detail",
			"camera_id", in.CameraID,
			"index", i,
			"label", det.Label,
			"confidence", det.Confidence,
			"box", fmt.Sprintf("(%d,%d)-(%d,%d)", det.Box.XMin, det.Box.YMin, det.Box.XMax, det.Box.YMax),
		)
		if det.Confidence < minConfidence || det.Label == "" {
			continue
		}

		severity := detectionSeverity(det.Label, det.Confidence)
		out, err := a.incidentCore.AddIncident(ctx, &incident.AddIncidentInput{
			ID:          uuid.NewString(),
			Title:       detectionTitle(det.Label),
			Description: fmt.Sprintf("%s detected with %.0f%% confidence", det.Label, det.Confidence*100),
			Timestamp:   at.Format(time.TimeOnly),
			Camera:      camera,
			Location:    in.Location,
			Severity:    string(severity),
			IsNew:       severity.IsActive() && severity != incident.SeverityInfo,
		})
		if err != nil {
			a.log.ErrorContext(ctx, "save incident failed", "label", det.Label, "err", err)
			continue
		}
		ids = append(ids, out.ID)
	}
	return newDetectionOutputOK(ids), nil
}

// detectionSeverity 置信度不足时 critical 降为 warning
func detectionSeverity(label string, confidence float64) incident.Severity {
	s, ok := labelSeverity[strings.ToLower(label)]
	if !ok {
		return incident.SeverityInfo
	}
	if s == incident.SeverityCritical && confidence < 0.6 {
		return incident.SeverityWarning
	}
	return s
}

// detectionTitle door_open -> Door Open Detected
func detectionTitle(label string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(label, "_", " ")) + " Detected"
}
