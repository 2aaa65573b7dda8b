package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/explain"
	"github.com/watchdog/watchdog/internal/risk"
)

type fakeChecker struct {
	res core.CheckResult
	err error
}

func (f *fakeChecker) Check(ctx context.Context, email string) (core.CheckResult, error) {
	return f.res, f.err
}

type fakeBreaches struct {
	out []core.Breach
	err error
}

func (f *fakeBreaches) Breaches(ctx context.Context, email string) ([]core.Breach, error) {
	return f.out, f.err
}

type failingExplainer struct{}

func (failingExplainer) Explain(ctx context.Context, in core.ExplainInput) (core.Explanation, error) {
	return core.Explanation{}, errors.New("no model")
}

func newTestService(c core.Checker, b core.BreachSource, e core.Explainer) *Service {
	s := New(c, b, risk.NewScorer(nil), e)
	s.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "scan-1" }
	return s
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last+tag@sub.example.org"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a b@c.de", "@b.co", "a@@b.co"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestScan_FullResult(t *testing.T) {
	c := &fakeChecker{res: core.CheckResult{Platforms: []string{"github.com", "spotify.com"}, Count: 2}}
	b := &fakeBreaches{out: []core.Breach{{Name: "LinkedIn", Year: "2021"}}}
	s := newTestService(c, b, explain.Static{})

	res, err := s.Scan(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "scan-1", res.ID)
	assert.Equal(t, "alice@example.com", res.Email)
	assert.Equal(t, 2, res.PlatformCount)
	assert.Equal(t, 15+8+25, res.RiskScore)
	assert.Equal(t, core.RiskMedium, res.RiskLevel)
	assert.Equal(t, explain.DefaultExplanation, res.Explanation)
	assert.Equal(t, explain.StaticModel, res.AIModel)
	assert.Equal(t, 2026, res.Timestamp.Year())
}

func TestScan_CheckerFailureDegrades(t *testing.T) {
	s := newTestService(&fakeChecker{err: errors.New("holehe: executable not found")}, nil, explain.Static{})
	res, err := s.Scan(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, res.Platforms)
	assert.Empty(t, res.Platforms)
	assert.Equal(t, 0, res.RiskScore)
	assert.Equal(t, core.RiskLow, res.RiskLevel)
}

func TestScan_Errors(t *testing.T) {
	ok := &fakeChecker{res: core.CheckResult{Platforms: []string{}}}

	s := newTestService(ok, &fakeBreaches{err: errors.New("down")}, explain.Static{})
	_, err := s.Scan(context.Background(), "a@b.co")
	assert.ErrorContains(t, err, "breach lookup")

	s = newTestService(ok, nil, failingExplainer{})
	_, err = s.Scan(context.Background(), "a@b.co")
	assert.ErrorContains(t, err, "explain")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s = newTestService(&fakeChecker{err: context.Canceled}, nil, explain.Static{})
	_, err = s.Scan(ctx, "a@b.co")
	assert.True(t, errors.Is(err, context.Canceled))
}
