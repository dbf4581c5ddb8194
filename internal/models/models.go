package models

import "time"

// Status is a task's workflow state as the server defines it.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists the valid statuses in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone, StatusCancelled}

// Valid reports whether s is one of the four server statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Label returns the display name for a status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Priority is a task's urgency tier.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists the valid priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Weight returns the sort weight for a priority. Urgent sorts above high.
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Label returns the display name for a priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return string(p)
}

// Tag is a user-owned colored label. Tasks hold snapshot copies of their
// tags, not live references; a renamed tag shows up only after a refetch.
type Tag struct {
	ID        string
	UserID    string
	Name      string
	Color     string // display hex, e.g. "#3B82F6"
	CreatedAt time.Time
}

// Task is a single unit of work owned by the signed-in user.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	Tags        []Tag
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Completed reports whether the task is done. Derived from Status so the two
// can never disagree.
func (t Task) Completed() bool {
	return t.Status == StatusDone
}

// FallbackCategory is the display category for tasks without tags.
const FallbackCategory = "Other"

// Category returns the display category: the first tag's name, or a fallback.
func (t Task) Category() string {
	if len(t.Tags) > 0 {
		return t.Tags[0].Name
	}
	return FallbackCategory
}

// Overdue reports whether the task's due date is strictly in the past and the
// task is not done.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(now)
}

// User is the signed-in account.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the assistant conversation.
type ChatMessage struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}
