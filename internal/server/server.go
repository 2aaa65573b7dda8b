package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/health"
	"github.com/watchdog/watchdog/internal/middleware"
)

const (
	DefaultCheckPath = "/holehe/check"
	ScanPath         = "/api/scan-email"
	ReportPath       = "/api/report"
	HealthPath       = "/api/health"

	maxBodySize   = 64 * 1024
	shutdownGrace = 5 * time.Second
)

// Server serves the check, scan, report and health endpoints.
type Server struct {
	Addr      string
	CheckPath string

	Checker   core.Checker
	Scanner   core.Scanner
	Health    *health.Registry
	AIEnabled bool
	Logger    *slog.Logger

	started time.Time
	now     func() time.Time
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	if s.CheckPath == "" {
		s.CheckPath = DefaultCheckPath
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.started.IsZero() {
		s.started = s.now()
	}
	if s.Health == nil {
		s.Health = health.NewRegistry()
	}

	mux := http.NewServeMux()
	mux.HandleFunc(s.CheckPath, s.handleCheck)
	if s.Scanner != nil {
		mux.HandleFunc(ScanPath, s.handleScan)
		mux.HandleFunc(ReportPath, s.handleReport)
	}
	mux.HandleFunc(HealthPath, s.handleHealth)

	return middleware.Chain(mux, middleware.RequestLogger(s.Logger), middleware.CORS)
}

// Run listens on Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "component", "server", "addr", ln.Addr().String(), "check_path", s.CheckPath)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down", "component", "server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
