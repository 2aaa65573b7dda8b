// Package wiring builds the dependency graph shared by the CLI commands:
// log store, structured logger, holehe checker, risk scorer, explainer,
// scan service and health registry.
package wiring

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/watchdog/watchdog/internal/config"
	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/ctxlog"
	"github.com/watchdog/watchdog/internal/explain"
	"github.com/watchdog/watchdog/internal/health"
	"github.com/watchdog/watchdog/internal/holehe"
	"github.com/watchdog/watchdog/internal/openrouter"
	"github.com/watchdog/watchdog/internal/risk"
	"github.com/watchdog/watchdog/internal/scan"
	"github.com/watchdog/watchdog/internal/server"
	"github.com/watchdog/watchdog/internal/store"
)

// Wire bundles the constructed components.
type Wire struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *store.DB
	Logs    *store.LogStore
	Checker *holehe.Checker
	Scorer  *risk.Scorer
	LLM     *openrouter.Client // nil when no API key is configured
	Scanner *scan.Service
	Health  *health.Registry
}

// New constructs the graph from cfg. Log output goes to logOut; warn and
// error records are also persisted to the log store.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Wire, error) {
	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open log store %s: %w", cfg.DBPath, err)
	}
	logs := store.NewLogStore(db.DB)
	logger := slog.New(store.NewLogHandler(ctxlog.NewHandler(cfg.LogLevel, cfg.LogFormat, logOut), logs, slog.LevelWarn))

	rules, err := risk.LoadRulesFile(cfg.RiskRulesPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	checker := holehe.NewChecker(holehe.NewExecRunner(cfg.HoleheBin))
	scorer := risk.NewScorer(rules)

	reg := health.NewRegistry()
	reg.Register("holehe", checker)
	reg.Register("database", db)
	reg.SetErrorSource(logs)

	var explainer core.Explainer = explain.Static{}
	var llm *openrouter.Client
	if cfg.AIEnabled() {
		llm = openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.Model)
		explainer = &explain.Fallback{
			Primary:   &explain.LLM{Client: llm, Model: llm.Model},
			Secondary: explain.Static{},
		}
		reg.Register("llm_client", llm)
	}

	logger.Debug("wired components", "component", "wiring",
		"holehe_bin", cfg.HoleheBin,
		"db_path", cfg.DBPath,
		"risk_rules", cfg.RiskRulesPath,
		"ai_enabled", cfg.AIEnabled(),
		"components", reg.Names(),
	)

	return &Wire{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Logs:    logs,
		Checker: checker,
		Scorer:  scorer,
		LLM:     llm,
		Scanner: scan.New(checker, nil, scorer, explainer),
		Health:  reg,
	}, nil
}

// Server returns an HTTP server over the wired components.
func (w *Wire) Server() *server.Server {
	return &server.Server{
		Addr:      w.Config.Addr,
		CheckPath: w.Config.CheckPath,
		Checker:   w.Checker,
		Scanner:   w.Scanner,
		Health:    w.Health,
		AIEnabled: w.Config.AIEnabled(),
		Logger:    w.Logger,
	}
}

// Close releases the database.
func (w *Wire) Close() error {
	return w.DB.Close()
}
