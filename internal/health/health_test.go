package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(status string) HealthChecker {
	return CheckerFunc(func() ComponentHealth {
		return ComponentHealth{Name: "x", Status: status}
	})
}

type fakeErrors struct {
	entries []LogEntry
	err     error
}

func (f *fakeErrors) GetErrors(limit int) ([]LogEntry, error) {
	return f.entries, f.err
}

func TestRegistry_AggregateStatus(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, StatusOK, r.GetStatus(), "empty registry is ok")

	r.Register("a", fixed(StatusOK))
	assert.Equal(t, StatusOK, r.GetStatus())

	r.Register("b", fixed(StatusDegraded))
	assert.Equal(t, StatusDegraded, r.GetStatus())

	r.Register("c", fixed(StatusError))
	assert.Equal(t, StatusError, r.GetStatus())

	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
}

func TestRegistry_RecentErrors(t *testing.T) {
	r := NewRegistry()
	report := r.Check()
	require.NotNil(t, report.Errors)
	assert.Empty(t, report.Errors)

	r.SetErrorSource(&fakeErrors{entries: []LogEntry{{ID: 1, Level: "error", Component: "holehe", Message: "boom"}}})
	report = r.Check()
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "boom", report.Errors[0].Message)

	r.SetErrorSource(&fakeErrors{err: errors.New("db closed")})
	report = r.Check()
	assert.Empty(t, report.Errors, "store errors are swallowed")
}
