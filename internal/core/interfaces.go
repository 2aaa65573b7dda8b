package core

import (
	"context"
)

// Runner invokes the OSINT tool for one email and returns its raw stdout.
// A non-nil error means the tool could not be run at all.
type Runner interface {
	Run(ctx context.Context, email string) (string, error)
}

// Checker runs the OSINT tool and parses its output.
type Checker interface {
	Check(ctx context.Context, email string) (CheckResult, error)
}

// LLMClient abstracts the low-level chat API client (OpenRouter, local LLM, etc).
type LLMClient interface {
	ChatCompletion(ctx context.Context, messages []Message) (string, error)
}

// Explainer turns a computed risk into an explanation and recommendations.
type Explainer interface {
	Explain(ctx context.Context, in ExplainInput) (Explanation, error)
}

// BreachSource looks up historical breach signals for an email.
type BreachSource interface {
	Breaches(ctx context.Context, email string) ([]Breach, error)
}

// RiskScorer computes a deterministic risk from platforms and breaches.
type RiskScorer interface {
	Score(platforms []string, breaches []Breach) Risk
}

// Scanner runs a full exposure scan for one email.
type Scanner interface {
	Scan(ctx context.Context, email string) (ScanResult, error)
}
