package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchdog/watchdog/internal/health"
	"github.com/watchdog/watchdog/internal/wiring"
)

func serveCmd() *cobra.Command {
	var addr, checkPath, holeheBin string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Addr = addr
			}
			if checkPath != "" {
				cfg.CheckPath = checkPath
			}
			if holeheBin != "" {
				cfg.HoleheBin = holeheBin
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := wiring.New(ctx, cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer w.Close()
			slog.SetDefault(w.Logger)

			if h := w.Checker.HealthCheck(); h.Status == health.StatusError {
				w.Logger.Warn("holehe not usable yet", "component", "holehe", "bin", cfg.HoleheBin, "error", h.Message)
			}
			if !cfg.AIEnabled() {
				w.Logger.Info("OPENROUTER_API_KEY not set, using static explanations", "component", "explain")
			}

			go w.Logs.RunCleanup(ctx, time.Hour)
			return w.Server().Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides PORT and WATCHDOG_ADDR)")
	cmd.Flags().StringVar(&checkPath, "check-path", "", "route for the raw holehe check")
	cmd.Flags().StringVar(&holeheBin, "holehe", "", "holehe executable name or path")
	return cmd
}
