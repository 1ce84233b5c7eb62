// Package scheduler drives time-based webinar status transitions.
// The insight core stays request-scoped; this is the one background worker
// in the service.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
)

// tickSchedule is how often pending transitions are checked
const tickSchedule = "@every 1m"

// Scheduler promotes webinars upcoming->live at their scheduled time and
// live->completed once their scheduled duration has elapsed
type Scheduler struct {
	store webinar.Store
	cron  *cron.Cron
	now   func() time.Time
}

// New creates a scheduler over the given store
func New(store webinar.Store) *Scheduler {
	return &Scheduler{
		store: store,
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Start begins periodic transition checks
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(tickSchedule, func() {
		s.Tick(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the periodic checks
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Tick applies every due status transition once
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now().UTC()

	upcoming, err := s.store.ListWebinarsByStatus(ctx, webinar.StatusUpcoming)
	if err != nil {
		log.Printf("[SCHEDULER]: failed to list upcoming webinars: %v", err)
	}
	for _, w := range upcoming {
		if w.ScheduledAt.After(now) {
			continue
		}
		if err := s.store.UpdateWebinarStatus(ctx, w.ID, webinar.StatusLive); err != nil {
			log.Printf("[SCHEDULER]: failed to mark webinar %s live: %v", w.ID, err)
			continue
		}
		log.Printf("[SCHEDULER]: webinar %s is now live", w.ID)
	}

	live, err := s.store.ListWebinarsByStatus(ctx, webinar.StatusLive)
	if err != nil {
		log.Printf("[SCHEDULER]: failed to list live webinars: %v", err)
	}
	for _, w := range live {
		endsAt := w.ScheduledAt.Add(time.Duration(w.DurationMinutes) * time.Minute)
		if endsAt.After(now) {
			continue
		}
		if err := s.store.UpdateWebinarStatus(ctx, w.ID, webinar.StatusCompleted); err != nil {
			log.Printf("[SCHEDULER]: failed to mark webinar %s completed: %v", w.ID, err)
			continue
		}
		log.Printf("[SCHEDULER]: webinar %s completed", w.ID)
	}
}
