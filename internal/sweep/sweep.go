package sweep

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Target clears stale active days and reports how many players it touched.
type Target interface {
	SweepStaleDays(ctx context.Context) (int, error)
}

// Scheduler runs the stale-day sweep once a day at the rollover hour.
type Scheduler struct {
	target Target
	logger *log.Logger
	sched  gocron.Scheduler
	job    gocron.Job
}

func New(target Target, boundaryHour int, loc *time.Location, logger *log.Logger) (*Scheduler, error) {
	if boundaryHour < 0 || boundaryHour > 23 {
		return nil, fmt.Errorf("sweep: boundary hour %d out of range 0..23", boundaryHour)
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("sweep: new scheduler: %w", err)
	}
	s := &Scheduler{target: target, logger: logger, sched: sched}

	// One second past the boundary so the new day key is already in effect.
	job, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(boundaryHour), 0, 1))),
		gocron.NewTask(func() {
			if _, err := s.RunOnce(context.Background()); err != nil {
				s.logger.Printf("[sweep] %v", err)
			}
		}),
		gocron.WithName("stale-day-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("sweep: new job: %w", err)
	}
	s.job = job
	return s, nil
}

// Start begins scheduling. It also sweeps once right away so a restart after a
// missed rollover catches up.
func (s *Scheduler) Start(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Printf("[sweep] startup: %v", err)
	}
	s.sched.Start()
}

func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	n, err := s.target.SweepStaleDays(ctx)
	if err != nil {
		return n, err
	}
	s.logger.Printf("[sweep] reconciled %d player(s)", n)
	return n, nil
}

func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}
