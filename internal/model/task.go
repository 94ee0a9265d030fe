package model

import "time"

// DateLayout is the calendar-date format used for due dates and habit logs.
// Dates in this format compare correctly as plain strings.
const DateLayout = "2006-01-02"

// DueType describes how a task's due date was chosen
type DueType string

const (
	DueOpen     DueType = "open"
	DueSpecific DueType = "specific"
	DueToday    DueType = "today"
	DueTomorrow DueType = "tomorrow"
)

// TaskStatus is the lifecycle state of a task. Delayed is derived by the
// overdue sweep, never set directly by the user.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusDelayed   TaskStatus = "delayed"
)

// Priority levels for tasks
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium" // default
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Task represents a single unit of work
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	SubjectID   string     `json:"subject_id"`
	DueType     DueType    `json:"due_type"`
	DueDate     string     `json:"due_date,omitempty"` // DateLayout, empty for open tasks
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a task with defaults applied
func NewTask(id, subjectID, title string) Task {
	return Task{
		ID:        id,
		SubjectID: subjectID,
		Title:     title,
		DueType:   DueOpen,
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: time.Now(),
	}
}

// IsOverdue returns true if the task's due date is strictly before now's
// local calendar day.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == "" {
		return false
	}
	return t.DueDate < now.Format(DateLayout)
}

// IsDueOn returns true if the task is due on the given local calendar day.
func (t *Task) IsDueOn(day string) bool {
	return t.DueDate == day
}
