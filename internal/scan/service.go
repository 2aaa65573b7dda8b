// Package scan orchestrates a full exposure scan: OSINT platform check,
// breach signals, deterministic risk scoring and explanation.
package scan

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/ctxlog"
	"github.com/watchdog/watchdog/internal/redact"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NoBreaches is a BreachSource that never reports breaches.
type NoBreaches struct{}

func (NoBreaches) Breaches(ctx context.Context, email string) ([]core.Breach, error) {
	return nil, nil
}

// Service runs scans.
type Service struct {
	Checker   core.Checker
	Breaches  core.BreachSource
	Scorer    core.RiskScorer
	Explainer core.Explainer

	now   func() time.Time
	newID func() string
}

// New builds a Service. A nil breaches source means NoBreaches.
func New(checker core.Checker, breaches core.BreachSource, scorer core.RiskScorer, explainer core.Explainer) *Service {
	if breaches == nil {
		breaches = NoBreaches{}
	}
	return &Service{
		Checker:   checker,
		Breaches:  breaches,
		Scorer:    scorer,
		Explainer: explainer,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Scan runs every stage for email. A failing OSINT check degrades to no
// platforms; breach lookup and explanation failures abort the scan.
func (s *Service) Scan(ctx context.Context, email string) (core.ScanResult, error) {
	logger := ctxlog.FromContext(ctx).With("component", "scan", "email", redact.Email(email))

	platforms := []string{}
	check, err := s.Checker.Check(ctx, email)
	if err != nil {
		if ctx.Err() != nil {
			return core.ScanResult{}, ctx.Err()
		}
		logger.Warn("holehe unavailable, continuing without platforms", "error", err)
	} else {
		platforms = check.Platforms
	}

	breaches, err := s.Breaches.Breaches(ctx, email)
	if err != nil {
		return core.ScanResult{}, fmt.Errorf("breach lookup: %w", err)
	}

	risk := s.Scorer.Score(platforms, breaches)
	logger.Info("risk computed", "platforms", len(platforms), "breach_signals", len(breaches), "score", risk.Score, "level", risk.Level)

	exp, err := s.Explainer.Explain(ctx, core.ExplainInput{
		Email:       email,
		Platforms:   platforms,
		BreachCount: len(breaches),
		Risk:        risk,
	})
	if err != nil {
		return core.ScanResult{}, fmt.Errorf("explain: %w", err)
	}

	return core.ScanResult{
		Success:         true,
		ID:              s.newID(),
		Email:           email,
		Timestamp:       s.now().UTC(),
		Platforms:       platforms,
		PlatformCount:   len(platforms),
		RiskScore:       risk.Score,
		RiskLevel:       risk.Level,
		Explanation:     exp.Explanation,
		Recommendations: exp.Recommendations,
		AIModel:         exp.Model,
	}, nil
}
