package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDayKeyMidnight(t *testing.T) {
	c, err := NewDayCycle(0, nil)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", c.DayKey(at("2026-03-10T00:00:00Z")))
	assert.Equal(t, "2026-03-10", c.DayKey(at("2026-03-10T23:59:59Z")))
	assert.Equal(t, "2026-03-11", c.DayKey(at("2026-03-11T00:00:00Z")))
}

func TestDayKeyBoundaryHour(t *testing.T) {
	c, err := NewDayCycle(4, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", c.DayKey(at("2026-03-11T03:59:59Z")))
	assert.Equal(t, "2026-03-11", c.DayKey(at("2026-03-11T04:00:00Z")))
	assert.Equal(t, "2026-02-28", c.DayKey(at("2026-03-01T01:00:00Z")))
	assert.Equal(t, "2025-12-31", c.DayKey(at("2026-01-01T03:00:00Z")))
}

func TestDayKeyLocation(t *testing.T) {
	c, err := NewDayCycle(0, time.FixedZone("EST", -5*3600))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", c.DayKey(at("2026-03-11T03:00:00Z")))
	assert.Equal(t, "2026-03-11", c.DayKey(at("2026-03-11T05:00:00Z")))
}

func TestNewDayCycleRejectsBadHour(t *testing.T) {
	_, err := NewDayCycle(24, nil)
	assert.Error(t, err)
	_, err = NewDayCycle(-1, nil)
	assert.Error(t, err)
}

func TestNextBoundary(t *testing.T) {
	c, err := NewDayCycle(4, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, at("2026-03-11T04:00:00Z"), c.NextBoundary(at("2026-03-11T03:00:00Z")))
	assert.Equal(t, at("2026-03-12T04:00:00Z"), c.NextBoundary(at("2026-03-11T04:00:00Z")))
	assert.Equal(t, at("2026-03-12T04:00:00Z"), c.NextBoundary(at("2026-03-11T17:30:00Z")))
}

func TestStartDayIdempotent(t *testing.T) {
	c, _ := NewDayCycle(0, nil)
	now := at("2026-03-10T09:00:00Z")
	rec := &Record{Key: "main", Player: NewPlayer()}

	first := c.StartDay(rec, now)
	assert.False(t, first.AlreadyStarted)
	assert.Equal(t, "2026-03-10", first.ActiveDay.DayKey)

	rec.Quests = []Quest{{ID: "q1", Title: "Run"}}
	second := c.StartDay(rec, now.Add(3*time.Hour))

	assert.True(t, second.AlreadyStarted)
	assert.Equal(t, first.ActiveDay, second.ActiveDay)
	assert.Len(t, rec.Quests, 1)
}

func TestReconcileClearsStaleDay(t *testing.T) {
	c, _ := NewDayCycle(0, nil)
	now := at("2026-03-10T09:00:00Z")
	rec := &Record{Key: "main", Player: NewPlayer()}
	c.StartDay(rec, now)
	rec.Quests = []Quest{{ID: "q1", Title: "Run"}}

	assert.False(t, c.Reconcile(rec, now.Add(time.Hour)))
	assert.Len(t, rec.Quests, 1)

	assert.True(t, c.Reconcile(rec, now.Add(24*time.Hour)))
	assert.Nil(t, rec.ActiveDay)
	assert.Empty(t, rec.Quests)

	assert.False(t, c.Reconcile(rec, now.Add(24*time.Hour)))
}

func TestReconcileDropsOrphanQuests(t *testing.T) {
	c, _ := NewDayCycle(0, nil)
	rec := &Record{Key: "main", Player: NewPlayer(), Quests: []Quest{{ID: "q1"}}}

	assert.True(t, c.Reconcile(rec, at("2026-03-10T09:00:00Z")))
	assert.Empty(t, rec.Quests)
}

func TestStartDayAfterRolloverReportsReconcile(t *testing.T) {
	c, _ := NewDayCycle(0, nil)
	rec := &Record{Key: "main", Player: NewPlayer()}
	c.StartDay(rec, at("2026-03-10T09:00:00Z"))
	rec.Quests = []Quest{{ID: "q1"}}

	res := c.StartDay(rec, at("2026-03-11T09:00:00Z"))

	assert.False(t, res.AlreadyStarted)
	assert.True(t, res.Reconciled)
	assert.Equal(t, "2026-03-11", res.ActiveDay.DayKey)
	assert.Empty(t, rec.Quests)
}
