package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchdog/watchdog/internal/core"
)

func sample() core.ScanResult {
	return core.ScanResult{
		Success:         true,
		ID:              "6f1c2a4e-0000-4000-8000-000000000000",
		Email:           "zoë@example.com",
		Timestamp:       time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
		Platforms:       []string{"github.com", "spotify.com"},
		PlatformCount:   2,
		RiskScore:       48,
		RiskLevel:       core.RiskMedium,
		Explanation:     "Two accounts are publicly linked to this address.",
		Recommendations: []string{"Enable two-factor authentication", "Use unique passwords"},
		AIModel:         "WatchDog AI Engine",
	}
}

func TestRender_ValidSinglePage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, 1, r.NumPage())
}

func TestRender_NoPlatforms(t *testing.T) {
	res := sample()
	res.Platforms = []string{}
	res.RiskLevel = core.RiskLow
	res.AIModel = ""
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res))

	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, 1, r.NumPage())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "watchdog-report-20261014-093000.pdf", Filename(sample()))
	assert.Contains(t, Filename(core.ScanResult{}), "watchdog-report-")
}
