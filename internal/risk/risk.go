// Package risk computes the deterministic exposure score for a scan.
//
// Every detected platform adds a weight according to its category (high,
// medium, or low for anything unlisted), breach signals add a flat bonus, and
// the total is capped at 100 before being bucketed into a level. No AI is
// involved; the explainer only narrates the result.
package risk

import (
	"strings"

	"github.com/watchdog/watchdog/internal/core"
)

// MaxScore caps every computed score.
const MaxScore = 100

// Weights are the points added per platform category and for breach signals.
type Weights struct {
	High       int
	Medium     int
	Low        int
	Breach     int
	BreachMany int
	// ManyBreaches is the breach count at which BreachMany is also added.
	ManyBreaches int
}

// Thresholds are the minimum scores for the MEDIUM and HIGH levels.
type Thresholds struct {
	High   int
	Medium int
}

// Rules is a complete scoring configuration.
type Rules struct {
	Weights    Weights
	Thresholds Thresholds
	High       map[string]struct{}
	Medium     map[string]struct{}
}

var defaultHigh = []string{
	"google", "gmail", "facebook", "instagram", "linkedin",
	"twitter", "github", "microsoft", "outlook", "yahoo",
}

var defaultMedium = []string{
	"amazon", "flipkart", "netflix", "udemy", "coursera", "spotify", "discord",
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	return &Rules{
		Weights: Weights{
			High:         15,
			Medium:       8,
			Low:          5,
			Breach:       25,
			BreachMany:   10,
			ManyBreaches: 3,
		},
		Thresholds: Thresholds{High: 70, Medium: 40},
		High:       toSet(defaultHigh),
		Medium:     toSet(defaultMedium),
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[Normalize(n)] = struct{}{}
	}
	return set
}

// Normalize lowercases and trims a platform name.
func Normalize(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// Scorer applies Rules.
type Scorer struct {
	rules *Rules
}

var _ core.RiskScorer = (*Scorer)(nil)

// NewScorer returns a scorer for rules (DefaultRules when nil).
func NewScorer(rules *Rules) *Scorer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Scorer{rules: rules}
}

// Category returns "high", "medium" or "low" for a platform name.
//
// The whole normalized name is tried first, then each dot-separated label, so
// holehe's domain-style names ("twitter.com", "amazon.co.uk") hit the same
// entries as bare names.
func (s *Scorer) Category(platform string) string {
	p := Normalize(platform)
	if _, ok := s.rules.High[p]; ok {
		return "high"
	}
	if _, ok := s.rules.Medium[p]; ok {
		return "medium"
	}
	labels := strings.Split(p, ".")
	if len(labels) < 2 {
		return "low"
	}
	for _, l := range labels {
		if _, ok := s.rules.High[l]; ok {
			return "high"
		}
	}
	for _, l := range labels {
		if _, ok := s.rules.Medium[l]; ok {
			return "medium"
		}
	}
	return "low"
}

// Score computes the capped score and its level.
func (s *Scorer) Score(platforms []string, breaches []core.Breach) core.Risk {
	w := s.rules.Weights
	score := 0
	for _, p := range platforms {
		switch s.Category(p) {
		case "high":
			score += w.High
		case "medium":
			score += w.Medium
		default:
			score += w.Low
		}
	}
	if len(breaches) > 0 {
		score += w.Breach
		if w.ManyBreaches > 0 && len(breaches) >= w.ManyBreaches {
			score += w.BreachMany
		}
	}
	if score > MaxScore {
		score = MaxScore
	}
	return core.Risk{Score: score, Level: s.Level(score)}
}

// Level buckets score by the configured thresholds.
func (s *Scorer) Level(score int) core.RiskLevel {
	switch {
	case score >= s.rules.Thresholds.High:
		return core.RiskHigh
	case score >= s.rules.Thresholds.Medium:
		return core.RiskMedium
	default:
		return core.RiskLow
	}
}
