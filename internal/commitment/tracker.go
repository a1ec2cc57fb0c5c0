// Package commitment detects commitments in incoming messages and tracks
// them through their lifecycle.
package commitment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
	"insig8-ai/internal/reminder"
	"insig8-ai/internal/service"
)

// Store is the commitment and message storage the tracker needs.
type Store interface {
	GetCommitment(ctx context.Context, id string) (*models.Commitment, error)
	ListCommitmentsByStatus(ctx context.Context, statuses ...models.CommitmentStatus) ([]*models.Commitment, error)
	UpdateCommitment(ctx context.Context, id string, fn func(*models.Commitment) error) (*models.Commitment, error)
	ListMessagesSince(ctx context.Context, since time.Time) ([]*models.AIContext, error)
}

// Indexer embeds and stores items.
type Indexer interface {
	Index(ctx context.Context, item models.StorableItem) error
}

// Reminders arms and disarms commitment reminders.
type Reminders interface {
	Schedule(ctx context.Context, r reminder.Reminder) (bool, error)
	Cancel(ctx context.Context, commitmentID string) error
}

var activeStatuses = []models.CommitmentStatus{
	models.StatusPending,
	models.StatusInProgress,
	models.StatusOverdue,
	models.StatusSnoozed,
}

// Tracker owns commitment creation and status changes.
type Tracker struct {
	store     Store
	index     Indexer
	detector  Detector
	reminders Reminders
	userID    string
	logger    *slog.Logger
	now       func() time.Time
}

// NewTracker creates a tracker. userID tags the message log entries.
func NewTracker(store Store, index Indexer, detector Detector, reminders Reminders, userID string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:     store,
		index:     index,
		detector:  detector,
		reminders: reminders,
		userID:    userID,
		logger:    logger,
		now:       time.Now,
	}
}

// AnalyzeMessage records msg in the message log and creates a pending
// commitment when one is detected. It returns nil when the message holds
// no commitment. Detector failures never surface; storage failures do.
func (t *Tracker) AnalyzeMessage(ctx context.Context, msg Message) (*models.Commitment, error) {
	logger := contextutil.LoggerOr(ctx, t.logger)
	if strings.TrimSpace(msg.Text) == "" {
		return nil, &service.ValidationError{Field: "message", Message: "message is required"}
	}
	now := t.now().UTC()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}

	t.recordMessage(ctx, msg)

	det, err := t.detector.Detect(ctx, msg)
	if err != nil {
		logger.Warn("commitment detection failed", "error", err)
		return nil, nil
	}
	if !det.HasCommitment {
		return nil, nil
	}

	priority, score := priorityFor(det.Urgency)
	recipient := det.Recipient
	if recipient == "" {
		recipient = msg.Sender
	}
	description := strings.TrimSpace(det.Description)
	if description == "" {
		description = strings.TrimSpace(msg.Text)
	}

	c := &models.Commitment{
		ID:              uuid.New().String(),
		Description:     description,
		Source:          models.SourceForPlatform(msg.Platform, msg.ThreadID, msg.Timestamp),
		Recipient:       recipient,
		DueDate:         DueDate(det.Deadline, det.ReminderHours, now),
		Status:          models.StatusPending,
		Priority:        priority,
		UrgencyScore:    score,
		Context:         msg.Text,
		RelatedMessages: []string{msg.Text},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.index.Index(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save commitment: %w", err)
	}
	if len(c.Embedding) == 0 {
		logger.Warn("commitment stored without embedding", "commitment_id", c.ID)
	}

	t.schedule(ctx, c)
	logger.Info("commitment detected", "commitment_id", c.ID, "priority", c.Priority, "recipient", c.Recipient)
	return c, nil
}

// recordMessage appends msg to the message log used by progress checks.
func (t *Tracker) recordMessage(ctx context.Context, msg Message) {
	entry := &models.AIContext{
		ID:        uuid.New().String(),
		UserID:    t.userID,
		Type:      models.ContextMessage,
		Content:   msg.Text,
		Relevance: 1,
		Metadata: map[string]string{
			"sender":   msg.Sender,
			"platform": msg.Platform,
			"thread":   msg.ThreadID,
		},
		Timestamp: msg.Timestamp.UTC(),
	}
	if err := t.index.Index(ctx, entry); err != nil {
		contextutil.LoggerOr(ctx, t.logger).Warn("failed to record message", "error", err)
	}
}

// Active returns every commitment that still needs attention.
func (t *Tracker) Active(ctx context.Context) ([]*models.Commitment, error) {
	list, err := t.store.ListCommitmentsByStatus(ctx, activeStatuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active commitments: %w", err)
	}
	if list == nil {
		list = []*models.Commitment{}
	}
	return list, nil
}

// CanTransition reports whether a user may move a commitment from one
// status to another. Terminal statuses accept nothing, overdue is only set
// by progress checks and snoozing goes through Snooze.
func CanTransition(from, to models.CommitmentStatus) bool {
	if from.Terminal() {
		return false
	}
	switch to {
	case models.StatusDismissed, models.StatusCompleted:
		return true
	case models.StatusInProgress:
		return from == models.StatusPending || from == models.StatusOverdue || from == models.StatusSnoozed
	case models.StatusPending:
		return from == models.StatusSnoozed
	default:
		return false
	}
}

// UpdateStatus moves a commitment to status. Completing or dismissing it
// cancels its reminder. Setting the current status again is a no-op.
func (t *Tracker) UpdateStatus(ctx context.Context, id string, status models.CommitmentStatus) (*models.Commitment, error) {
	c, err := t.store.UpdateCommitment(ctx, id, func(c *models.Commitment) error {
		if c.Status == status {
			return errUnchanged
		}
		if !CanTransition(c.Status, status) {
			return fmt.Errorf("%w: %s to %s", service.ErrInvalidTransition, c.Status, status)
		}
		c.Status = status
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return t.store.GetCommitment(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	if status.Terminal() {
		if err := t.reminders.Cancel(ctx, id); err != nil {
			contextutil.LoggerOr(ctx, t.logger).Warn("failed to cancel reminder", "commitment_id", id, "error", err)
		}
	}
	contextutil.LoggerOr(ctx, t.logger).Info("commitment status updated", "commitment_id", id, "status", status)
	return c, nil
}

var errUnchanged = errors.New("status unchanged")

// Snooze defers a commitment until the given time. The pending reminder is
// replaced by one firing 30 minutes before until.
func (t *Tracker) Snooze(ctx context.Context, id string, until time.Time) (*models.Commitment, error) {
	if !until.After(t.now()) {
		return nil, &service.ValidationError{Field: "until", Message: "must be in the future"}
	}
	c, err := t.store.UpdateCommitment(ctx, id, func(c *models.Commitment) error {
		if c.Status.Terminal() {
			return fmt.Errorf("%w: %s to %s", service.ErrInvalidTransition, c.Status, models.StatusSnoozed)
		}
		due := until.UTC()
		c.Status = models.StatusSnoozed
		c.DueDate = &due
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := t.reminders.Cancel(ctx, id); err != nil {
		contextutil.LoggerOr(ctx, t.logger).Warn("failed to cancel reminder", "commitment_id", id, "error", err)
	}
	t.schedule(ctx, c)
	return c, nil
}

func (t *Tracker) schedule(ctx context.Context, c *models.Commitment) {
	r := reminder.For(c, t.now())
	if _, err := t.reminders.Schedule(ctx, r); err != nil {
		contextutil.LoggerOr(ctx, t.logger).Warn("failed to schedule reminder", "commitment_id", c.ID, "error", err)
	}
}
