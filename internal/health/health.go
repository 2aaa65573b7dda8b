package health

import (
	"sort"
	"sync"
	"time"
)

// Status values reported by components.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

// ComponentHealth represents the health status of a single component.
type ComponentHealth struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // "ok", "degraded", "error"
	Message   string    `json:"message,omitempty"`
	LastOK    time.Time `json:"last_ok,omitempty"`
	LastError time.Time `json:"last_error,omitempty"`
}

// HealthReport aggregates health from all components.
type HealthReport struct {
	Timestamp  time.Time                  `json:"timestamp"`
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Errors     []LogEntry                 `json:"recent_errors"`
}

// LogEntry represents a structured log entry.
type LogEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`     // error, warn, info
	Component string    `json:"component"` // holehe, server, llm, db
	Message   string    `json:"message"`
}

// HealthChecker interface for components to implement.
type HealthChecker interface {
	HealthCheck() ComponentHealth
}

// CheckerFunc adapts a function to HealthChecker.
type CheckerFunc func() ComponentHealth

func (f CheckerFunc) HealthCheck() ComponentHealth { return f() }

// ErrorSource supplies recent error log entries for a report.
type ErrorSource interface {
	GetErrors(limit int) ([]LogEntry, error)
}

// Registry holds health checkers for all components.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	errors   ErrorSource
}

// NewRegistry creates a new health registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[string]HealthChecker),
	}
}

// Register adds a component health checker.
func (r *Registry) Register(name string, checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// SetErrorSource attaches the store that backs HealthReport.Errors.
func (r *Registry) SetErrorSource(src ErrorSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = src
}

// Names returns registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs all health checks and returns a report.
func (r *Registry) Check() HealthReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := HealthReport{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
		Errors:     []LogEntry{},
	}

	for name, checker := range r.checkers {
		report.Components[name] = checker.HealthCheck()
	}
	report.Status = aggregate(report.Components)

	if r.errors != nil {
		if entries, err := r.errors.GetErrors(10); err == nil && entries != nil {
			report.Errors = entries
		}
	}
	return report
}

// GetStatus returns the overall system status.
func (r *Registry) GetStatus() string {
	return r.Check().Status
}

func aggregate(components map[string]ComponentHealth) string {
	for _, c := range components {
		if c.Status == StatusError {
			return StatusError
		}
	}
	for _, c := range components {
		if c.Status == StatusDegraded {
			return StatusDegraded
		}
	}
	return StatusOK
}
