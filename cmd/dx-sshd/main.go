// dx-sshd serves the live conditions dashboard over SSH, so a club station
// can expose band conditions without anyone installing the binary:
//
//	ssh -p 2222 conditions.example.org
package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"dxwatch/internal/config"
	"dxwatch/internal/provider"
	"dxwatch/internal/render"
	"dxwatch/internal/tui"
	"dxwatch/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Errorf("shutting down tracer provider: %v", err)
		}
	}()

	feedClient := provider.NewDXFeedProvider(tracer, cfg.APIURL,
		time.Duration(cfg.RequestTimeoutSecs)*time.Second)
	interval := time.Duration(cfg.WatchIntervalSecs) * time.Second

	addr := fmt.Sprintf("%s:%d", cfg.SSHBind, cfg.SSHPort)
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		// the dashboard is read-only and public; keys are logged, not checked
		wish.WithPublicKeyAuth(func(_ ssh.Context, key ssh.PublicKey) bool {
			logger.Infof("session key %s", gossh.FingerprintSHA256(key))
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				_, _, active := s.Pty()
				if !active {
					logger.Warnf("no active terminal for %s", s.User())
				}
				model := tui.NewModel(feedClient, render.Options{}, interval)
				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		logger.Fatalf("create SSH server: %v", err)
	}

	go func() {
		logger.Infof("dx-sshd listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
			logger.Errorf("SSH server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	ossignal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down dx-sshd...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("SSH server shutdown: %v", err)
	}
}
