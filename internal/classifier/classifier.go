// Package classifier keeps each event's is_past flag consistent with the calendar.
package classifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/maqam/internal/metrics"
	"github.com/starford/maqam/internal/models"
	"github.com/starford/maqam/internal/store"
)

// Triggers label what started a pass.
const (
	TriggerStartup = "startup"
	TriggerRead    = "read"
	TriggerAdmin   = "admin"
	TriggerCron    = "cron"
)

// Repository is the part of the store the classifier needs.
type Repository interface {
	ReclassifyEvents(ctx context.Context, today models.Date) (store.ReclassifyResult, error)
}

// Classify reports whether an event on date is past as of today.
// An event dated today is not past.
func Classify(date, today models.Date) bool {
	return date.Before(today)
}

// Classifier runs reclassification passes and remembers the last date it was applied for.
type Classifier struct {
	repo     Repository
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger

	mu       sync.Mutex
	lastPass models.Date
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithClock sets the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) { c.now = now }
}

// WithLocation sets the time zone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(c *Classifier) { c.location = loc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// New creates a Classifier over repo.
func New(repo Repository, opts ...Option) *Classifier {
	c := &Classifier{
		repo:     repo,
		now:      time.Now,
		location: time.UTC,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today returns the current calendar date in the configured location.
func (c *Classifier) Today() models.Date {
	return models.DateOf(c.now().In(c.location))
}

// Reclassify sets is_past = date < currentDate for every event and returns the rows moved.
// Running it again with the same date changes nothing.
func (c *Classifier) Reclassify(ctx context.Context, currentDate models.Date, trigger string) (store.ReclassifyResult, error) {
	res, err := c.repo.ReclassifyEvents(ctx, currentDate)
	if err != nil {
		return store.ReclassifyResult{}, err
	}

	// A pass for any other date leaves the store classified against that date,
	// so the next read must reclassify for today.
	c.mu.Lock()
	if currentDate.Time.Equal(c.Today().Time) {
		c.lastPass = currentDate
	} else {
		c.lastPass = models.Date{}
	}
	c.mu.Unlock()

	metrics.RecordClassifierPass(trigger, res.MarkedPast, res.MarkedUpcoming, c.now())
	c.logger.Info("events reclassified",
		slog.String("date", currentDate.String()),
		slog.String("trigger", trigger),
		slog.Int64("marked_past", res.MarkedPast),
		slog.Int64("marked_upcoming", res.MarkedUpcoming))
	return res, nil
}

// EnsureFresh runs a pass for today unless one already ran for today.
func (c *Classifier) EnsureFresh(ctx context.Context) error {
	today := c.Today()

	c.mu.Lock()
	fresh := !c.lastPass.IsZero() && !c.lastPass.Before(today)
	c.mu.Unlock()
	if fresh {
		return nil
	}

	_, err := c.Reclassify(ctx, today, TriggerRead)
	return err
}

// LastPass returns the most recent date a pass was applied for, zero if none.
func (c *Classifier) LastPass() models.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPass
}
