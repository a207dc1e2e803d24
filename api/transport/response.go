package transport

import (
	"encoding/json"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/usecase/taskview"
)

// Envelope wraps every JSON response, success or error.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  any    `json:"error,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

func NewSuccess(data, meta any) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code string, err, meta any) Envelope {
	return Envelope{Status: "error", Code: code, Error: err, Meta: meta}
}

// String is the JSON form of the envelope, used in logs.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// TaskList is the payload of GET /api/v1/tasks.
type TaskList struct {
	Tasks  []domain.Task   `json:"tasks"`
	Counts taskview.Counts `json:"counts"`
	Filter taskview.Tag    `json:"filter"`
	Search string          `json:"search,omitempty"`
}
