package models

import (
	"fmt"
	"strings"
	"time"
)

// NotePriority ranks a goal or reminder.
type NotePriority string

const (
	PriorityLow    NotePriority = "low"
	PriorityMedium NotePriority = "medium"
	PriorityHigh   NotePriority = "high"
)

var validNotePriorities = map[NotePriority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// ValidNotePriority returns true if p is a valid note priority.
func ValidNotePriority(p NotePriority) bool {
	return validNotePriorities[p]
}

// Note is a goal or reminder with a deadline. It is independent of the
// ledger; no balance computation reads it.
type Note struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Body        string       `json:"body,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	IsCompleted bool         `json:"is_completed"`
	Owner       Owner        `json:"owner"`
	Priority    NotePriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsOverdue reports whether the note has an uncompleted deadline in the past.
func (n *Note) IsOverdue(now time.Time) bool {
	return !n.IsCompleted && n.Deadline != nil && n.Deadline.Before(now)
}

// Validate checks required note fields.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(n.Title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	if strings.TrimSpace(string(n.Owner)) == "" || n.Owner.IsGlobal() {
		return fmt.Errorf("owner is required and must not be %q", OwnerGlobal)
	}
	if n.Priority != "" && !ValidNotePriority(n.Priority) {
		return fmt.Errorf("invalid priority %q; must be low, medium, or high", n.Priority)
	}
	return nil
}
