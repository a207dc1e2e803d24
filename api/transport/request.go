package transport

import "github.com/fastygo/taskboard/domain"

// TaskRequest is the body of POST /api/v1/tasks.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
}

func (r TaskRequest) Input() domain.TaskInput {
	return domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Completed:   r.Completed,
	}
}

// TaskPatchRequest is the body of PATCH /api/v1/tasks/{id}. Absent fields are left unchanged.
type TaskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

func (r TaskPatchRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Completed:   r.Completed,
	}
}
