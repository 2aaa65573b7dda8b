package holehe

import (
	"context"
	"sync"
	"time"

	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/ctxlog"
	"github.com/watchdog/watchdog/internal/health"
	"github.com/watchdog/watchdog/internal/redact"
)

// Checker runs holehe through a core.Runner and parses the result.
type Checker struct {
	runner core.Runner

	mu           sync.RWMutex
	lastSuccess  time.Time
	lastError    time.Time
	lastErrorMsg string
}

var _ core.Checker = (*Checker)(nil)

// NewChecker wraps runner.
func NewChecker(runner core.Runner) *Checker {
	return &Checker{runner: runner}
}

// Check runs the tool for email and returns the matched platforms.
func (c *Checker) Check(ctx context.Context, email string) (core.CheckResult, error) {
	logger := ctxlog.FromContext(ctx).With("component", "holehe")
	start := time.Now()

	stdout, err := c.runner.Run(ctx, email)
	if err != nil {
		c.recordError(err)
		logger.Error("holehe execution failed", "email", redact.Email(email), "error", err)
		return core.CheckResult{}, err
	}
	c.recordSuccess()

	platforms := ParsePlatforms(stdout)
	logger.Info("holehe check complete", "email", redact.Email(email), "platforms", len(platforms), "duration", time.Since(start))
	return core.CheckResult{
		Email:     email,
		Platforms: platforms,
		Count:     len(platforms),
	}, nil
}

func (c *Checker) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSuccess = time.Now()
}

func (c *Checker) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = time.Now()
	c.lastErrorMsg = err.Error()
}

// HealthCheck reports binary availability and the outcome of the most recent run.
func (c *Checker) HealthCheck() health.ComponentHealth {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := health.ComponentHealth{
		Name:      "holehe",
		Status:    health.StatusOK,
		LastOK:    c.lastSuccess,
		LastError: c.lastError,
	}
	if a, ok := c.runner.(interface{ Available() error }); ok {
		if err := a.Available(); err != nil {
			h.Status = health.StatusError
			h.Message = err.Error()
			return h
		}
	}
	if !c.lastError.IsZero() && c.lastError.After(c.lastSuccess) {
		h.Status = health.StatusDegraded
		h.Message = c.lastErrorMsg
	}
	return h
}
