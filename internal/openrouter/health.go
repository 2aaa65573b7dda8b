package openrouter

import (
	"sync"
	"time"

	"github.com/watchdog/watchdog/internal/health"
)

// clientHealth tracks LLM client health state.
type clientHealth struct {
	mu           sync.RWMutex
	lastSuccess  time.Time
	lastError    time.Time
	lastErrorMsg string
	successCount int64
	errorCount   int64
}

func (c *clientHealth) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSuccess = time.Now()
	c.successCount++
}

func (c *clientHealth) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = time.Now()
	c.lastErrorMsg = err.Error()
	c.errorCount++
}

// HealthCheck returns the health status of the LLM client.
func (c *Client) HealthCheck() health.ComponentHealth {
	c.health.mu.RLock()
	defer c.health.mu.RUnlock()

	h := health.ComponentHealth{
		Name:      "llm_client",
		Status:    health.StatusOK,
		LastOK:    c.health.lastSuccess,
		LastError: c.health.lastError,
	}
	if c.APIKey == "" {
		h.Status = health.StatusDegraded
		h.Message = "API key not set; static explanations only"
		return h
	}

	if !c.health.lastError.IsZero() {
		if c.health.lastError.After(c.health.lastSuccess) {
			h.Status = health.StatusError
			h.Message = c.health.lastErrorMsg
		} else if time.Since(c.health.lastError) < 5*time.Minute {
			// Recent error but recovered
			h.Status = health.StatusDegraded
			h.Message = "recovered from: " + c.health.lastErrorMsg
		}
	}
	return h
}

// Stats returns (success, error) call counts.
func (c *Client) Stats() (int64, int64) {
	c.health.mu.RLock()
	defer c.health.mu.RUnlock()
	return c.health.successCount, c.health.errorCount
}
