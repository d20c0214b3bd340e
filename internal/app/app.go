package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gowvp/securesight/internal/conf"
)

// Run 启动 http 服务，收到退出信号后优雅关闭
func Run(bc *conf.Bootstrap) error {
	handler, cleanUp, err := wireApp(bc)
	if err != nil {
		return err
	}
	defer cleanUp()

	timeout := bc.Server.HTTP.Timeout.Duration()
	svc := http.Server{
		Addr:              fmt.Sprintf(":%d", bc.Server.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server start", "port", bc.Server.HTTP.Port, "version", bc.BuildVersion)
		if err := svc.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-interrupt:
		slog.Info("receive signal", "signal", s.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown", "err", err)
		return err
	}
	slog.Info("http server stopped")
	return nil
}
