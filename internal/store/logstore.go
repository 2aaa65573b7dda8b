package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/watchdog/watchdog/internal/health"
)

// LogStore keeps recent operational log entries with automatic cleanup.
type LogStore struct {
	db         *sql.DB
	mu         sync.Mutex
	maxEntries int           // Max log entries to keep
	maxAge     time.Duration // Max age of logs
	now        func() time.Time
}

// NewLogStore creates a new log store with default limits.
func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{
		db:         db,
		maxEntries: 10000,
		maxAge:     7 * 24 * time.Hour,
		now:        time.Now,
	}
}

// Log writes a log entry.
func (s *LogStore) Log(level, component, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO system_logs (created_unix_ms, level, component, message) VALUES (?, ?, ?, ?)",
		s.now().UnixMilli(), level, component, message,
	)
	return err
}

// LogError is a convenience method for error-level logs.
func (s *LogStore) LogError(component, message string) error {
	return s.Log("error", component, message)
}

// LogWarn is a convenience method for warn-level logs.
func (s *LogStore) LogWarn(component, message string) error {
	return s.Log("warn", component, message)
}

// GetLogs retrieves recent logs, newest first, with optional filters.
func (s *LogStore) GetLogs(level, component string, limit int) ([]health.LogEntry, error) {
	query := "SELECT id, created_unix_ms, level, component, message FROM system_logs WHERE 1=1"
	args := []interface{}{}

	if level != "" {
		query += " AND level = ?"
		args = append(args, level)
	}
	if component != "" {
		query += " AND component = ?"
		args = append(args, component)
	}

	query += " ORDER BY created_unix_ms DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []health.LogEntry{}
	for rows.Next() {
		var entry health.LogEntry
		var ms int64
		if err := rows.Scan(&entry.ID, &ms, &entry.Level, &entry.Component, &entry.Message); err != nil {
			return nil, err
		}
		entry.Timestamp = time.UnixMilli(ms).UTC()
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// GetErrors retrieves recent error logs.
func (s *LogStore) GetErrors(limit int) ([]health.LogEntry, error) {
	return s.GetLogs("error", "", limit)
}

// Cleanup removes old logs based on configured limits.
func (s *LogStore) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge).UnixMilli()
	if _, err := s.db.Exec("DELETE FROM system_logs WHERE created_unix_ms < ?", cutoff); err != nil {
		return fmt.Errorf("cleanup by age: %w", err)
	}

	_, err := s.db.Exec(`
		DELETE FROM system_logs WHERE id NOT IN (
			SELECT id FROM system_logs ORDER BY created_unix_ms DESC, id DESC LIMIT ?
		)
	`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("cleanup by count: %w", err)
	}
	return nil
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *LogStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Cleanup()
		}
	}
}

// Count returns the number of log entries.
func (s *LogStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM system_logs").Scan(&count)
	return count, err
}
