package holehe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes an executable shell script standing in for holehe.
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake tool requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "holehe")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExecRunner_PassesEmailAndReturnsStdout(t *testing.T) {
	bin := fakeTool(t, `echo "[+] twitter.com"
echo "arg=$1 argc=$#"
echo "to stderr" >&2`)
	r := NewExecRunner(bin)

	out, err := r.Run(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "[+] twitter.com")
	assert.Contains(t, out, "arg=alice@example.com argc=1")
	assert.NotContains(t, out, "to stderr")
}

func TestExecRunner_NonZeroExitStillParsed(t *testing.T) {
	bin := fakeTool(t, `echo "[+] github.com"
exit 3`)
	out, err := NewExecRunner(bin).Run(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, []string{"github.com"}, ParsePlatforms(out))
}

func TestExecRunner_Env(t *testing.T) {
	bin := fakeTool(t, `echo "[+] $WATCHDOG_FAKE_PLATFORM"`)
	r := &ExecRunner{Bin: bin, Env: map[string]string{"WATCHDOG_FAKE_PLATFORM": "spotify.com"}}
	out, err := r.Run(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, []string{"spotify.com"}, ParsePlatforms(out))
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := NewExecRunner(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := r.Run(context.Background(), "a@b.co")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	r = NewExecRunner("watchdog-definitely-not-a-real-binary")
	_, err = r.Run(context.Background(), "a@b.co")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	assert.Error(t, r.Available())
}

func TestExecRunner_CancelledContext(t *testing.T) {
	bin := fakeTool(t, `echo "[+] never"`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExecRunner(bin).Run(ctx, "a@b.co")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestExecRunner_DefaultBin(t *testing.T) {
	assert.Equal(t, DefaultBin, NewExecRunner("").bin())
}
