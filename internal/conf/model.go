package conf

// Bootstrap 配置文件根节点
type Bootstrap struct {
	Server    Server    `toml:"Server"`
	Data      Data      `toml:"Data"`
	Log       Log       `toml:"Log"`
	Dashboard Dashboard `toml:"Dashboard"`
	Incident  Incident  `toml:"Incident"`

	Debug        bool   `toml:"-"` // 启动参数 -debug
	BuildVersion string `toml:"-"` // 编译时注入的版本号
	ConfigPath   string `toml:"-"` // 配置文件路径
}

type Server struct {
	Debug bool       `toml:"Debug" comment:"调试模式，输出更详细的日志"`
	HTTP  ServerHTTP `toml:"HTTP"`
}

type ServerHTTP struct {
	Port    int      `toml:"Port" comment:"http 端口"`
	Timeout Duration `toml:"Timeout" comment:"请求超时时间"`
	PProf   PProf    `toml:"PProf"`
}

type PProf struct {
	Enabled   bool     `toml:"Enabled"`
	AccessIps []string `toml:"AccessIps" comment:"允许访问 pprof 的 ip"`
}

type Data struct {
	Database Database `toml:"Database"`
}

type Database struct {
	Dsn             string   `toml:"Dsn" comment:"sqlite 文件路径，或 postgres:// / mysql:// 开头的连接串"`
	MaxIdleConns    int32    `toml:"MaxIdleConns"`
	MaxOpenConns    int32    `toml:"MaxOpenConns"`
	ConnMaxLifetime Duration `toml:"ConnMaxLifetime"`
	SlowThreshold   Duration `toml:"SlowThreshold"`
}

type Log struct {
	Level string `toml:"Level" comment:"debug/info/warn/error"`
}

// Dashboard 看板会话相关配置
type Dashboard struct {
	DefaultHour       int      `toml:"DefaultHour" comment:"时间轴默认展示的小时 [0,23]"`
	MinVisualWidthPct float64  `toml:"MinVisualWidthPct" comment:"时间轴事件最小宽度（百分比），保证短事件可点击"`
	ClipSeconds       int      `toml:"ClipSeconds" comment:"事件回放片段时长（秒）"`
	SeekStepSeconds   int      `toml:"SeekStepSeconds" comment:"快进/快退步长（秒）"`
	SegmentSeconds    int      `toml:"SegmentSeconds" comment:"回放 m3u8 切片时长（秒）"`
	MediaDir          string   `toml:"MediaDir" comment:"事件回放切片目录，为空时不提供静态文件服务"`
	SessionIdle       Duration `toml:"SessionIdle" comment:"会话空闲超时，超时后回收"`
}

// Incident 事件数据相关配置
type Incident struct {
	RetainDays int  `toml:"RetainDays" comment:"事件保留天数，<=0 表示不清理"`
	SeedDemo   bool `toml:"SeedDemo" comment:"数据库为空时写入演示数据"`
}
