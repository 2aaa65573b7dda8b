package holehe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/watchdog/watchdog/internal/ctxlog"
	"github.com/watchdog/watchdog/internal/redact"
)

// DefaultBin is the executable looked up on PATH when no binary is configured.
const DefaultBin = "holehe"

// ErrNotFound is returned when the holehe executable cannot be resolved.
var ErrNotFound = errors.New("holehe: executable not found")

// ExecRunner runs the holehe CLI as a subprocess with the email as its only argument.
type ExecRunner struct {
	// Bin is the executable name or path. Empty means DefaultBin.
	Bin string
	// WorkDir is the subprocess working directory. Empty inherits ours.
	WorkDir string
	// Env is added on top of the inherited environment.
	Env map[string]string
}

// NewExecRunner returns a runner for bin (DefaultBin when empty).
func NewExecRunner(bin string) *ExecRunner {
	return &ExecRunner{Bin: bin}
}

func (r *ExecRunner) bin() string {
	if r.Bin == "" {
		return DefaultBin
	}
	return r.Bin
}

// Run executes the tool and returns stdout. The process is bound to ctx only;
// there is no separate timeout. A non-zero exit status is not an error: holehe
// exits non-zero on partial failures while still printing usable results.
func (r *ExecRunner) Run(ctx context.Context, email string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("component", "holehe")

	cmd := exec.CommandContext(ctx, r.bin(), email)
	cmd.Dir = r.WorkDir
	cmd.Env = os.Environ()
	for k, v := range r.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("holehe: %w", ctxErr)
	}
	if runErr != nil {
		var exit *exec.ExitError
		if errors.As(runErr, &exit) {
			logger.Warn("holehe exited non-zero", "email", redact.Email(email), "exit_code", exit.ExitCode(), "stderr_bytes", errBuf.Len())
			return outBuf.String(), nil
		}
		if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %v", ErrNotFound, runErr)
		}
		return "", fmt.Errorf("holehe: %w", runErr)
	}
	if errBuf.Len() > 0 {
		logger.Debug("holehe stderr", "email", redact.Email(email), "stderr", errBuf.String())
	}
	return outBuf.String(), nil
}

// Available reports whether the configured binary resolves.
func (r *ExecRunner) Available() error {
	if _, err := exec.LookPath(r.bin()); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return nil
}
