// Package reminder schedules one pending reminder per commitment.
package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"insig8-ai/internal/models"
)

// leadTime is how long before a due date the reminder fires.
const leadTime = 30 * time.Minute

// Reminder is a pending notification about a commitment.
type Reminder struct {
	CommitmentID string          `json:"commitmentId"`
	FireAt       time.Time       `json:"fireAt"`
	Description  string          `json:"description"`
	Recipient    string          `json:"recipient,omitempty"`
	Priority     models.Priority `json:"priority"`
}

// FireTime returns due minus 30 minutes when a due date is set, otherwise
// now plus a delay that shrinks with priority.
func FireTime(due *time.Time, priority models.Priority, now time.Time) time.Time {
	if due != nil {
		return due.Add(-leadTime)
	}
	return now.Add(priorityDelay(priority))
}

func priorityDelay(p models.Priority) time.Duration {
	switch p {
	case models.PriorityUrgent:
		return time.Hour
	case models.PriorityHigh:
		return 2 * time.Hour
	case models.PriorityLow:
		return 8 * time.Hour
	default:
		return 4 * time.Hour
	}
}

// For builds the reminder of c.
func For(c *models.Commitment, now time.Time) Reminder {
	return Reminder{
		CommitmentID: c.ID,
		FireAt:       FireTime(c.DueDate, c.Priority, now),
		Description:  c.Description,
		Recipient:    c.Recipient,
		Priority:     c.Priority,
	}
}

// DeliverFunc is called when a reminder fires.
type DeliverFunc func(ctx context.Context, r Reminder)

// Scheduler arms one timer per commitment and mirrors pending reminders to
// a Store.
type Scheduler struct {
	store   Store
	deliver DeliverFunc
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	pending map[string]*armed
	closed  bool
}

type armed struct {
	reminder Reminder
	timer    *time.Timer
}

// NewScheduler creates a scheduler. deliver may be nil.
func NewScheduler(store Store, deliver DeliverFunc, logger *slog.Logger) *Scheduler {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		store:   store,
		deliver: deliver,
		logger:  logger,
		now:     time.Now,
		pending: map[string]*armed{},
	}
}

// Schedule arms r, replacing any reminder pending for the same commitment.
// A reminder whose fire time is not in the future is dropped and Schedule
// reports false.
func (s *Scheduler) Schedule(ctx context.Context, r Reminder) (bool, error) {
	if err := s.Cancel(ctx, r.CommitmentID); err != nil {
		return false, err
	}

	delay := r.FireAt.Sub(s.now())
	if delay <= 0 {
		s.logger.Debug("dropping reminder in the past", "commitment_id", r.CommitmentID, "fire_at", r.FireAt)
		return false, nil
	}

	if err := s.store.Put(ctx, r); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, nil
	}
	a := &armed{reminder: r}
	a.timer = time.AfterFunc(delay, func() { s.fire(a) })
	s.pending[r.CommitmentID] = a
	s.logger.Debug("reminder scheduled", "commitment_id", r.CommitmentID, "fire_at", r.FireAt)
	return true, nil
}

// Cancel disarms the reminder of a commitment. Cancelling a commitment
// without a reminder is a no-op.
func (s *Scheduler) Cancel(ctx context.Context, commitmentID string) error {
	s.mu.Lock()
	if a, ok := s.pending[commitmentID]; ok {
		a.timer.Stop()
		delete(s.pending, commitmentID)
	}
	s.mu.Unlock()

	return s.store.Remove(ctx, commitmentID)
}

// Restore re-arms stored reminders after a restart. Reminders whose fire
// time has passed are removed without firing.
func (s *Scheduler) Restore(ctx context.Context) (int, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	restored := 0
	for _, r := range stored {
		ok, err := s.Schedule(ctx, r)
		if err != nil {
			return restored, err
		}
		if ok {
			restored++
		}
	}
	return restored, nil
}

// Pending returns the armed reminders ordered by fire time.
func (s *Scheduler) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, 0, len(s.pending))
	for _, a := range s.pending {
		out = append(out, a.reminder)
	}
	sortByFireTime(out)
	return out
}

// Get returns the armed reminder of a commitment.
func (s *Scheduler) Get(commitmentID string) (Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.pending[commitmentID]
	if !ok {
		return Reminder{}, false
	}
	return a.reminder, true
}

// Close stops every timer. Stored reminders are kept for Restore.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.pending {
		a.timer.Stop()
		delete(s.pending, id)
	}
	s.closed = true
}

func (s *Scheduler) fire(a *armed) {
	r := a.reminder
	s.mu.Lock()
	if s.closed || s.pending[r.CommitmentID] != a {
		s.mu.Unlock()
		return
	}
	delete(s.pending, r.CommitmentID)
	s.mu.Unlock()

	ctx := context.Background()
	if err := s.store.Remove(ctx, r.CommitmentID); err != nil {
		s.logger.Warn("failed to remove fired reminder", "commitment_id", r.CommitmentID, "error", err)
	}
	s.logger.Info("reminder fired", "commitment_id", r.CommitmentID, "description", r.Description)
	if s.deliver != nil {
		s.deliver(ctx, r)
	}
}
