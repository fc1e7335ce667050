package types

import "time"

// Status is the closed set of task states.
type Status string

// Task statuses. A task starts as "todo"; any status may be set from any
// other status, the model imposes no transition ordering.
const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// validStatuses is the set of recognized status values.
var validStatuses = map[Status]bool{
	StatusTodo:  true,
	StatusDoing: true,
	StatusDone:  true,
}

// Statuses lists all statuses in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool { return validStatuses[s] }

// ParseStatus converts raw user input into a Status.
// Returns a validation error for anything outside the defined set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", NewValidationError("invalid status %q (valid: todo, doing, done)", raw)
	}
	return s, nil
}

// DeadlineLayout is the calendar-date format accepted for task deadlines.
const DeadlineLayout = "2006-01-02"

// ParseDeadline converts raw user input into an optional deadline date.
// An empty string means no deadline. Returns a validation error when the
// input is not a valid calendar date.
func ParseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(DeadlineLayout, raw)
	if err != nil {
		return nil, NewValidationError("invalid deadline %q (expected YYYY-MM-DD)", raw)
	}
	return &d, nil
}

// Task represents one unit of work belonging to a project.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// NewTask builds a task with the given id and fields, validating them.
// The new task's status is StatusTodo. Returns a validation error when the
// title is empty or whitespace-only.
func NewTask(id int, title, description string, deadline *time.Time) (*Task, error) {
	t := &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		Deadline:    deadline,
		CreatedAt:   time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the task's field constraints.
func (t *Task) Validate() error { return validateStruct(t) }

// SetStatus sets the task status to the given value.
// Returns a validation error if the status is not recognized; the prior
// status is left unchanged on error. Any valid status may be set from any
// other, including backward moves such as done to doing.
func (t *Task) SetStatus(status Status) error {
	if !status.Valid() {
		return NewValidationError("invalid status %q (valid: todo, doing, done)", status)
	}
	t.Status = status
	return nil
}

// Overdue reports whether the task has a deadline strictly before the date
// of the given instant and is not yet done.
func (t *Task) Overdue(now time.Time) bool {
	if t.Deadline == nil || t.Status == StatusDone {
		return false
	}
	return t.Deadline.Before(dateOf(now))
}

// Close marks the task done and records the closing date.
func (t *Task) Close(on time.Time) {
	t.Status = StatusDone
	d := dateOf(on)
	t.ClosedAt = &d
}

// dateOf truncates an instant to midnight of its calendar date.
func dateOf(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
