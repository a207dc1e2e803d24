package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// TaskSlot persists the complete, ordered task collection as one unit.
type TaskSlot interface {
	Load(ctx context.Context) ([]domain.Task, bool, error)
	Save(ctx context.Context, tasks []domain.Task) error
	Clear(ctx context.Context) error
}
