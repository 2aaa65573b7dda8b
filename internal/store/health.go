package store

import (
	"time"

	"github.com/watchdog/watchdog/internal/health"
)

// HealthCheck returns the health status of the database.
func (db *DB) HealthCheck() health.ComponentHealth {
	h := health.ComponentHealth{
		Name:   "database",
		Status: health.StatusOK,
	}

	if err := db.Ping(); err != nil {
		h.Status = health.StatusError
		h.Message = err.Error()
		h.LastError = time.Now()
		return h
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM system_logs").Scan(&count); err != nil {
		h.Status = health.StatusDegraded
		h.Message = "cannot query system_logs: " + err.Error()
		h.LastError = time.Now()
		return h
	}

	h.LastOK = time.Now()
	return h
}
