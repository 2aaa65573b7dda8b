package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/ctxlog"
	"github.com/watchdog/watchdog/internal/health"
	"github.com/watchdog/watchdog/internal/redact"
	"github.com/watchdog/watchdog/internal/report"
	"github.com/watchdog/watchdog/internal/scan"
)

type emailRequest struct {
	Email string `json:"email"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status        string                            `json:"status"`
	Message       string                            `json:"message"`
	AIEnabled     bool                              `json:"aiEnabled"`
	Timestamp     time.Time                         `json:"timestamp"`
	Uptime        string                            `json:"uptime"`
	UptimeSeconds int64                             `json:"uptime_seconds"`
	Components    map[string]health.ComponentHealth `json:"components"`
	RecentErrors  []health.LogEntry                 `json:"recent_errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}

// decodeEmail reads {"email": ...} from the body. ok is false when the body
// is not a JSON object with a string email field.
func decodeEmail(w http.ResponseWriter, r *http.Request) (email string, ok bool) {
	var req emailRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		return "", false
	}
	return strings.TrimSpace(req.Email), true
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	email, ok := decodeEmail(w, r)
	if !ok || email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Email required"})
		return
	}

	res, err := s.Checker.Check(r.Context(), email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Holehe execution failed",
			Details: err.Error(),
		})
		return
	}
	if res.Platforms == nil {
		res.Platforms = []string{}
	}
	res.Email = email
	res.Count = len(res.Platforms)
	writeJSON(w, http.StatusOK, res)
}

// scanRequest validates the body and runs the scan, writing the error
// response itself. ok reports whether res is usable.
func (s *Server) scanRequest(w http.ResponseWriter, r *http.Request) (res core.ScanResult, ok bool) {
	email, _ := decodeEmail(w, r)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Email is required"})
		return res, false
	}
	if !scan.ValidEmail(email) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid email format"})
		return res, false
	}

	res, err := s.Scanner.Scan(r.Context(), email)
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("scan failed", "component", "server", "email", redact.Email(email), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Scan failed", Message: "Internal server error"})
		return res, false
	}
	if res.Platforms == nil {
		res.Platforms = []string{}
	}
	if res.Recommendations == nil {
		res.Recommendations = []string{}
	}
	return res, true
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	res, ok := s.scanRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	res, ok := s.scanRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, res); err != nil {
		ctxlog.FromContext(r.Context()).Error("render report", "component", "report", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Report failed", Message: "Internal server error"})
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(res)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	rep := s.Health.Check()
	now := s.now()

	writeJSON(w, http.StatusOK, healthResponse{
		Status:        rep.Status,
		Message:       "WatchDog backend is running",
		AIEnabled:     s.AIEnabled,
		Timestamp:     now.UTC(),
		Uptime:        strings.TrimSpace(humanize.RelTime(s.started, now, "", "")),
		UptimeSeconds: int64(now.Sub(s.started).Seconds()),
		Components:    rep.Components,
		RecentErrors:  rep.Errors,
	})
}
