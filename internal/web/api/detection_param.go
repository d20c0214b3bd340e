package api

// DetectionInput 检测事件回调请求体
type DetectionInput struct {
	CameraID   string      `json:"camera_id"`  // 摄像头 ID
	Camera     string      `json:"camera"`     // 摄像头名称
	Location   string      `json:"location"`   // 安装位置
	Timestamp  int64       `json:"timestamp"`  // Unix 时间戳 (毫秒)，为 0 时取接收时间
	Detections []Detection `json:"detections"` // 检测结果列表
}

// Detection 检测对象
type Detection struct {
	Label      string      `json:"label"`      // 物体类别
	Confidence float64     `json:"confidence"` // 置信度 (0.0 - 1.0)
	Box        BoundingBox `json:"box"`        // 像素坐标边界框
}

// BoundingBox 像素坐标边界框
type BoundingBox struct {
	XMin int `json:"x_min"`
	YMin int `json:"y_min"`
	XMax int `json:"x_max"`
	YMax int `json:"y_max"`
}

// DetectionOutput 通用响应体
type DetectionOutput struct {
	Code        int      `json:"code"` // 错误代码，0 表示成功
	Msg         string   `json:"msg"`
	IncidentIDs []string `json:"incident_ids"`
}

func newDetectionOutputOK(ids []string) DetectionOutput {
	if ids == nil {
		ids = []string{}
	}
	return DetectionOutput{Code: 0, Msg: "success", IncidentIDs: ids}
}
