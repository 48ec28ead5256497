package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTarget struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingTarget) SweepStaleDays(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return 2, c.err
}

func (c *countingTarget) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestNewRejectsBadHour(t *testing.T) {
	_, err := New(&countingTarget{}, 24, nil, nil)
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	target := &countingTarget{}
	s, err := New(target, 0, time.UTC, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, target.Calls())

	target.err = errors.New("db locked")
	_, err = s.RunOnce(context.Background())
	assert.EqualError(t, err, "db locked")
}

func TestStartSweepsAndSchedulesAtBoundary(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	target := &countingTarget{}
	s, err := New(target, 4, loc, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	s.Start(context.Background())
	assert.Equal(t, 1, target.Calls())

	next, err := s.NextRun()
	require.NoError(t, err)
	local := next.In(loc)
	assert.Equal(t, 4, local.Hour())
	assert.Equal(t, 0, local.Minute())
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(25*time.Hour)))
}
