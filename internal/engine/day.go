package engine

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical day key format.
const DayKeyLayout = "2006-01-02"

// DayCycle defines which calendar day a moment belongs to. A day starts at
// BoundaryHour in Location rather than at midnight when BoundaryHour > 0.
type DayCycle struct {
	BoundaryHour int
	Location     *time.Location
}

func NewDayCycle(boundaryHour int, loc *time.Location) (DayCycle, error) {
	if boundaryHour < 0 || boundaryHour > 23 {
		return DayCycle{}, fmt.Errorf("day boundary hour %d out of range 0..23", boundaryHour)
	}
	if loc == nil {
		loc = time.UTC
	}
	return DayCycle{BoundaryHour: boundaryHour, Location: loc}, nil
}

// DayKey maps now to its YYYY-MM-DD key.
func (c DayCycle) DayKey(now time.Time) string {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	// Compare the wall-clock hour so DST transitions do not move the boundary.
	y, m, d := local.Date()
	if local.Hour() < c.BoundaryHour {
		d--
	}
	return time.Date(y, m, d, 12, 0, 0, 0, loc).Format(DayKeyLayout)
}

// NextBoundary returns the first rollover instant strictly after now.
func (c DayCycle) NextBoundary(now time.Time) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	y, m, d := local.Date()
	b := time.Date(y, m, d, c.BoundaryHour, 0, 0, 0, loc)
	if !b.After(local) {
		b = time.Date(y, m, d+1, c.BoundaryHour, 0, 0, 0, loc)
	}
	return b
}

// Reconcile clears a stale active day and its quest list. It reports whether the
// record changed so the caller can decide whether to persist.
func (c DayCycle) Reconcile(rec *Record, now time.Time) bool {
	today := c.DayKey(now)
	if rec.ActiveDay != nil && rec.ActiveDay.DayKey == today {
		return false
	}
	if rec.ActiveDay == nil && len(rec.Quests) == 0 {
		return false
	}
	rec.ActiveDay = nil
	rec.Quests = nil
	return true
}

type StartDayResult struct {
	ActiveDay      ActiveDay `json:"activeDay"`
	AlreadyStarted bool      `json:"alreadyStarted"`
	Reconciled     bool      `json:"reconciled"`
}

// StartDay is idempotent within one day key.
func (c DayCycle) StartDay(rec *Record, now time.Time) StartDayResult {
	reconciled := c.Reconcile(rec, now)
	if rec.ActiveDay != nil {
		return StartDayResult{ActiveDay: *rec.ActiveDay, AlreadyStarted: true, Reconciled: reconciled}
	}
	rec.ActiveDay = &ActiveDay{DayKey: c.DayKey(now), StartedAt: now.UTC()}
	rec.Quests = nil
	return StartDayResult{ActiveDay: *rec.ActiveDay, Reconciled: reconciled}
}

// requireActiveDay fails unless rec has an active day for today. A stale day counts
// as not started; clearing it is left to Reconcile.
func (c DayCycle) requireActiveDay(rec *Record, now time.Time) error {
	if rec.ActiveDay == nil || rec.ActiveDay.DayKey != c.DayKey(now) {
		return errDayNotStarted()
	}
	return nil
}
