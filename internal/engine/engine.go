package engine

import (
	"time"

	"github.com/google/uuid"
)

// Engine applies the progression rules to a Record. It holds no per-player state;
// every method is a synchronous transformation of the record it is given.
type Engine struct {
	Days  DayCycle
	Clock Clock
	NewID func() string
}

func New(days DayCycle, clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{Days: days, Clock: clock, NewID: uuid.NewString}
}

func (e *Engine) now() time.Time {
	return e.Clock.Now()
}

func (e *Engine) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

// Reconcile clears rec's active day if it no longer matches today.
func (e *Engine) Reconcile(rec *Record) bool {
	return e.Days.Reconcile(rec, e.now())
}

func (e *Engine) StartDay(rec *Record) StartDayResult {
	return e.Days.StartDay(rec, e.now())
}

// TodayKey returns the day key for the engine clock's current time.
func (e *Engine) TodayKey() string {
	return e.Days.DayKey(e.now())
}

// PlayerView is a read-only summary of a record for display.
type PlayerView struct {
	Player     Player            `json:"player"`
	XPToNext   int               `json:"xpToNext"`
	MaxMinutes map[Attribute]int `json:"maxMinutes"`
	ActiveDay  *ActiveDay        `json:"activeDay"`
	TodayKey   string            `json:"todayKey"`
}

func (e *Engine) View(rec *Record) PlayerView {
	maxM := make(map[Attribute]int, len(Attributes))
	for _, a := range Attributes {
		maxM[a] = MaxMinutesFor(a, rec.Player.Stats)
	}
	var day *ActiveDay
	if rec.ActiveDay != nil {
		d := *rec.ActiveDay
		day = &d
	}
	return PlayerView{
		Player:     rec.Player,
		XPToNext:   XPToNext(rec.Player.Level),
		MaxMinutes: maxM,
		ActiveDay:  day,
		TodayKey:   e.TodayKey(),
	}
}
