// Package taskview derives filtered subsets, badge counts and summary figures
// from a task collection. Nothing here is cached; every call recomputes.
package taskview

import (
	"math"
	"strings"

	"github.com/fastygo/taskboard/domain"
)

// Tag selects tasks by completion state.
type Tag string

const (
	TagAll       Tag = "all"
	TagActive    Tag = "active"
	TagCompleted Tag = "completed"
)

// ParseTag maps a query value onto a Tag. Empty input selects TagAll.
func ParseTag(value string) (Tag, error) {
	switch tag := Tag(strings.ToLower(strings.TrimSpace(value))); tag {
	case "":
		return TagAll, nil
	case TagAll, TagActive, TagCompleted:
		return tag, nil
	default:
		return "", domain.ErrInvalidFilter
	}
}

func (t Tag) accepts(task *domain.Task) bool {
	switch t {
	case TagActive:
		return !task.Completed
	case TagCompleted:
		return task.Completed
	default:
		return true
	}
}

// Filter returns the tasks accepted by tag whose title or description contains
// search, ignoring case. Order is preserved and the input is not modified.
func Filter(tasks []domain.Task, tag Tag, search string) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		if tag.accepts(&tasks[i]) && tasks[i].Matches(search) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// Counts holds the badge number of every tag.
type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

func CountByTag(tasks []domain.Task) Counts {
	var c Counts
	for i := range tasks {
		c.All++
		if tasks[i].Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// Summary is the statistics panel shown above the list.
type Summary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	HighPriority   int `json:"highPriority"`
	CompletionRate int `json:"completionRate"`
}

// Summarize counts tasks; HighPriority only includes open tasks and
// CompletionRate is a rounded percentage, 0 for an empty collection.
func Summarize(tasks []domain.Task) Summary {
	counts := CountByTag(tasks)
	s := Summary{
		Total:     counts.All,
		Completed: counts.Completed,
		Active:    counts.Active,
	}
	for i := range tasks {
		if tasks[i].Priority == domain.PriorityHigh && !tasks[i].Completed {
			s.HighPriority++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
