package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"raynott/config"
	"raynott/mockapi"
	"raynott/services/logger"
)

const shutdownTimeout = 5 * time.Second

// mockServerCommand chạy backend giả lập cục bộ để dùng thử CLI
func mockServerCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mock-server",
		Usage: "Chạy backend giả lập (REST + websocket) với dữ liệu mẫu",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: cfg.MockAPIAddr},
			&cli.StringFlag{Name: "seed-admin-email", Value: "admin@raynott.com"},
			&cli.StringFlag{Name: "seed-admin-password", Value: "Admin@123"},
			&cli.BoolFlag{Name: "no-seed", Usage: "không nạp dữ liệu mẫu"},
		},
		Action: func(c *cli.Context) error {
			log := logger.NewDefaultLogger(cfg.LogLevel)
			if cfg.LogLevel > logger.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			srv, err := mockapi.New(mockapi.Options{Secret: cfg.MockJWTSecret, Logger: log})
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if !c.Bool("no-seed") {
				if err := srv.Seed(c.String("seed-admin-email"), c.String("seed-admin-password")); err != nil {
					return cli.Exit(err.Error(), 1)
				}
			}
			srv.Start()
			defer srv.Stop()

			server := &http.Server{
				Addr:    c.String("addr"),
				Handler: srv.Handler(),
			}
			log.Info("Mock API listening on %s", server.Addr)

			srvErr := make(chan error, 1)
			go func() {
				srvErr <- server.ListenAndServe()
			}()

			stopCtx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-srvErr:
				if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
					return cli.Exit(err.Error(), 1)
				}
			case <-stopCtx.Done():
				log.Info("Nhận tín hiệu dừng, đang tắt server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				log.Error("Tắt server lỗi: %v", err)
			}
			log.Info("Mock API stopped")
			return nil
		},
	}
}
