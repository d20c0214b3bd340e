package main

import (
	"expvar"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gowvp/securesight/internal/app"
	"github.com/gowvp/securesight/internal/conf"
	"github.com/ixugo/goddd/pkg/system"
)

var (
	buildVersion = "0.0.1" // 构建版本号
	gitBranch    = "dev"
	gitHash      = "debug"
)

var (
	configDir = flag.String("conf", "./configs", "config directory, eg: -conf /configs/")
	debug     = flag.Bool("debug", false, "print verbose log")
)

func main() {
	flag.Parse()

	expvar.NewString("git_branch").Set(gitBranch)
	expvar.NewString("git_hash").Set(gitHash)

	dir := *configDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(system.Getwd(), dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("create config dir", "err", err)
		os.Exit(1)
	}

	path := filepath.Join(dir, "config.toml")
	bc, err := conf.SetupConfig(path)
	if err != nil {
		slog.Error("load config", "path", path, "err", err)
		os.Exit(1)
	}
	bc.Debug = *debug || bc.Server.Debug
	bc.BuildVersion = buildVersion
	bc.ConfigPath = path

	slog.SetDefault(setupLogger(&bc))

	if err := app.Run(&bc); err != nil {
		slog.Error("app exit", "err", err)
		os.Exit(1)
	}
}

// setupLogger 调试模式输出文本日志，否则输出 json
func setupLogger(bc *conf.Bootstrap) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(bc.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	if bc.Debug {
		level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level, AddSource: true}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
