package commitment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/adhocore/gronx"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
	"insig8-ai/internal/search"
)

// responseSimilarity is the similarity a later message from the recipient
// must exceed to count as the commitment being fulfilled.
const responseSimilarity = 0.8

// ProgressReport summarizes one progress check.
type ProgressReport struct {
	Checked   int      `json:"checked"`
	Completed []string `json:"completed"`
	Overdue   []string `json:"overdue"`
	Resumed   []string `json:"resumed"`
}

// CheckProgress re-evaluates every active commitment. A snoozed commitment
// whose snooze date has passed returns to pending. A commitment answered by
// a sufficiently similar later message from its recipient is completed. A
// pending or in-progress commitment past its due date becomes overdue.
func (t *Tracker) CheckProgress(ctx context.Context) (ProgressReport, error) {
	logger := contextutil.LoggerOr(ctx, t.logger)
	report := ProgressReport{Completed: []string{}, Overdue: []string{}, Resumed: []string{}}

	active, err := t.Active(ctx)
	if err != nil {
		return report, err
	}
	report.Checked = len(active)
	now := t.now()

	for _, c := range active {
		if c.Status == models.StatusSnoozed {
			if c.DueDate == nil || c.DueDate.After(now) {
				continue
			}
			if _, err := t.setStatus(ctx, c.ID, models.StatusSnoozed, models.StatusPending); err != nil {
				logger.Warn("failed to resume snoozed commitment", "commitment_id", c.ID, "error", err)
				continue
			}
			report.Resumed = append(report.Resumed, c.ID)
			continue
		}

		responded, err := t.hasResponse(ctx, c)
		if err != nil {
			logger.Warn("failed to check for response", "commitment_id", c.ID, "error", err)
		}
		if responded {
			if _, err := t.UpdateStatus(ctx, c.ID, models.StatusCompleted); err != nil {
				logger.Warn("failed to complete commitment", "commitment_id", c.ID, "error", err)
				continue
			}
			report.Completed = append(report.Completed, c.ID)
			continue
		}

		if c.DueDate != nil && c.DueDate.Before(now) &&
			(c.Status == models.StatusPending || c.Status == models.StatusInProgress) {
			if _, err := t.setStatus(ctx, c.ID, c.Status, models.StatusOverdue); err != nil {
				logger.Warn("failed to mark commitment overdue", "commitment_id", c.ID, "error", err)
				continue
			}
			report.Overdue = append(report.Overdue, c.ID)
		}
	}

	if len(report.Completed)+len(report.Overdue)+len(report.Resumed) > 0 {
		logger.Info("progress check", "checked", report.Checked, "completed", len(report.Completed),
			"overdue", len(report.Overdue), "resumed", len(report.Resumed))
	}
	return report, nil
}

// setStatus applies a time-triggered transition if the commitment is still in from.
func (t *Tracker) setStatus(ctx context.Context, id string, from, to models.CommitmentStatus) (*models.Commitment, error) {
	return t.store.UpdateCommitment(ctx, id, func(c *models.Commitment) error {
		if c.Status != from {
			return fmt.Errorf("status changed to %s", c.Status)
		}
		c.Status = to
		return nil
	})
}

// hasResponse looks for a message from the recipient, recorded after the
// commitment was created, that is similar to its description.
func (t *Tracker) hasResponse(ctx context.Context, c *models.Commitment) (bool, error) {
	if len(c.Embedding) == 0 {
		return false, nil
	}
	messages, err := t.store.ListMessagesSince(ctx, c.CreatedAt)
	if err != nil {
		return false, err
	}
	for _, m := range messages {
		if !m.Timestamp.After(c.CreatedAt) {
			continue
		}
		if c.Recipient != "" && !strings.EqualFold(strings.TrimSpace(m.Metadata["sender"]), strings.TrimSpace(c.Recipient)) {
			continue
		}
		if search.Cosine(m.Embedding, c.Embedding) > responseSimilarity {
			return true, nil
		}
	}
	return false, nil
}

// ProgressMonitor runs CheckProgress on a cron schedule.
type ProgressMonitor struct {
	tracker *Tracker
	expr    string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProgressMonitor validates the cron expression.
func NewProgressMonitor(tracker *Tracker, expr string) (*ProgressMonitor, error) {
	if !gronx.New().IsValid(expr) {
		return nil, fmt.Errorf("invalid cron expression: %s", expr)
	}
	return &ProgressMonitor{tracker: tracker, expr: expr}, nil
}

// Start launches the loop. Starting a running monitor is a no-op.
func (m *ProgressMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop ends the loop and waits for an in-flight check. It is idempotent.
func (m *ProgressMonitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *ProgressMonitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	logger := m.tracker.logger

	for {
		next, err := gronx.NextTickAfter(m.expr, time.Now(), false)
		if err != nil {
			logger.Error("failed to compute next progress check", "expr", m.expr, "error", err)
			return
		}
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := m.tracker.CheckProgress(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("progress check failed", "error", err)
		}
	}
}
