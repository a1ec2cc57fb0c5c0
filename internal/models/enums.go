package models

import (
	"fmt"
	"strings"
)

// CommitmentStatus is the lifecycle state of a tracked commitment.
type CommitmentStatus string

const (
	StatusPending    CommitmentStatus = "pending"
	StatusInProgress CommitmentStatus = "in_progress"
	StatusCompleted  CommitmentStatus = "completed"
	StatusOverdue    CommitmentStatus = "overdue"
	StatusDismissed  CommitmentStatus = "dismissed"
	StatusSnoozed    CommitmentStatus = "snoozed"
)

// ParseCommitmentStatus parses a status string as sent by the bridge.
// Both snake_case and camelCase spellings of in_progress are accepted.
func ParseCommitmentStatus(s string) (CommitmentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "in_progress", "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	case "overdue":
		return StatusOverdue, nil
	case "dismissed":
		return StatusDismissed, nil
	case "snoozed":
		return StatusSnoozed, nil
	default:
		return "", fmt.Errorf("unknown commitment status %q", s)
	}
}

// Terminal reports whether no further transition is possible.
func (s CommitmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusDismissed
}

// Active reports whether the commitment still needs attention.
func (s CommitmentStatus) Active() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusOverdue, StatusSnoozed:
		return true
	default:
		return false
	}
}

// Priority is shared by commitments and action items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority maps a detector or user supplied label to a Priority.
// Unknown labels map to medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	case "urgent", "critical":
		return PriorityUrgent
	default:
		return PriorityMedium
	}
}

// UrgencyScore is the numeric score recorded for a priority at detection time.
func (p Priority) UrgencyScore() float64 {
	switch p {
	case PriorityLow:
		return 0.3
	case PriorityHigh:
		return 0.7
	case PriorityUrgent:
		return 0.9
	default:
		return 0.5
	}
}

// Rank orders priorities from low (0) to urgent (3).
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return 1
	}
}

// ActionItemStatus is the state of a meeting action item.
type ActionItemStatus string

const (
	ActionItemOpen       ActionItemStatus = "open"
	ActionItemInProgress ActionItemStatus = "in_progress"
	ActionItemCompleted  ActionItemStatus = "completed"
	ActionItemCancelled  ActionItemStatus = "cancelled"
)

// ContentType classifies clipboard content.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentURL   ContentType = "url"
	ContentFile  ContentType = "file"
	ContentImage ContentType = "image"
)

// ContextType tags an AIContext fact.
type ContextType string

const (
	ContextMessage    ContextType = "message"
	ContextPreference ContextType = "preference"
	ContextActivity   ContextType = "activity"
	ContextEntity     ContextType = "entity"
)

// EntityType identifies one of the independently stored collections.
type EntityType string

const (
	TypeCommitment    EntityType = "commitment"
	TypeMeeting       EntityType = "meeting"
	TypeActionItem    EntityType = "action_item"
	TypeClipboard     EntityType = "clipboard"
	TypeScreenCapture EntityType = "screen_capture"
	TypeAIContext     EntityType = "ai_context"
)

// SearchableTypes lists the vector-bearing types in enumeration order.
// Search ties are broken by this order.
var SearchableTypes = []EntityType{
	TypeCommitment,
	TypeMeeting,
	TypeActionItem,
	TypeClipboard,
	TypeScreenCapture,
}

// ParseEntityType parses a type filter as sent by the bridge.
func ParseEntityType(s string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "commitment", "commitments":
		return TypeCommitment, nil
	case "meeting", "meetings":
		return TypeMeeting, nil
	case "action_item", "actionitem", "action_items", "actionitems":
		return TypeActionItem, nil
	case "clipboard", "clipboard_item":
		return TypeClipboard, nil
	case "screen_capture", "screencapture", "screen":
		return TypeScreenCapture, nil
	default:
		return "", fmt.Errorf("unknown entity type %q", s)
	}
}
