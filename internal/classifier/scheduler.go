package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers a reclassification on a cron schedule.
type Scheduler struct {
	c    *Classifier
	cron *cron.Cron
}

// NewScheduler parses schedule (standard 5-field or @descriptor) and prepares the job.
func NewScheduler(c *Classifier, schedule string) (*Scheduler, error) {
	cr := cron.New(cron.WithLocation(c.location))
	s := &Scheduler{c: c, cron: cr}
	if _, err := cr.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("classifier: invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	if _, err := s.c.Reclassify(context.Background(), s.c.Today(), TriggerCron); err != nil {
		s.c.logger.Error("scheduled reclassification failed", slog.String("error", err.Error()))
	}
}

// Run starts the schedule and blocks until ctx is cancelled, then waits for a running job.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.c.logger.Info("classifier schedule started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
