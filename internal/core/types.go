package core

import "time"

// Message represents a chat message (OpenAI-compatible format).
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

// CheckResult is the outcome of one holehe invocation.
type CheckResult struct {
	Email     string   `json:"email"`
	Platforms []string `json:"platforms"`
	Count     int      `json:"count"`
}

// Breach is a historical breach signal for an email. Used internally for scoring only.
type Breach struct {
	Name string `json:"name"`
	Year string `json:"year"`
}

// RiskLevel buckets a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Risk is the deterministic score computed from platforms and breaches.
type Risk struct {
	Score int       `json:"riskScore"`
	Level RiskLevel `json:"riskLevel"`
}

// ExplainInput is everything the explainer may see. Breach names are deliberately absent.
type ExplainInput struct {
	Email       string
	Platforms   []string
	BreachCount int
	Risk        Risk
}

// Explanation is the human-readable layer on top of a Risk.
type Explanation struct {
	Explanation     string   `json:"explanation"`
	Recommendations []string `json:"recommendations"`
	Model           string   `json:"-"`
}

// ScanResult is the full response of a scan-email request.
type ScanResult struct {
	Success         bool      `json:"success"`
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Timestamp       time.Time `json:"timestamp"`
	Platforms       []string  `json:"platforms"`
	PlatformCount   int       `json:"platformCount"`
	RiskScore       int       `json:"riskScore"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Explanation     string    `json:"explanation"`
	Recommendations []string  `json:"recommendations"`
	AIModel         string    `json:"aiModel"`
}
