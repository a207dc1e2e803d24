package domain

import (
	"strings"
	"time"
)

// Priority ranks a task. The zero value is treated as PriorityMedium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps user input onto a Priority. Empty input yields the default.
func ParsePriority(value string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Task is a single to-do item owned by the local user.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Completed
}

// Matches reports whether the lower-cased query is a substring of the title or description.
func (t *Task) Matches(query string) bool {
	if t == nil {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// TaskInput carries the fields accepted when a task is created.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Completed   bool
}

// Normalize trims the input and validates it at the form boundary.
func (in TaskInput) Normalize() (TaskInput, Priority, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return in, "", ErrTitleRequired
	}
	priority, err := ParsePriority(in.Priority)
	if err != nil {
		return in, "", err
	}
	return in, priority, nil
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
}

// Validate checks the fields that are present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Priority != nil {
		if _, err := ParsePriority(*p.Priority); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the patch into a copy of task and stamps UpdatedAt.
// The patch must have been validated.
func (p TaskPatch) Apply(task Task, now time.Time) Task {
	if p.Title != nil {
		task.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		task.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	if p.Priority != nil {
		task.Priority, _ = ParsePriority(*p.Priority)
	}
	task.UpdatedAt = now
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}
	return task
}
