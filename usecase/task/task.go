package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// UseCase owns the in-memory task collection and writes it back to the slot
// after every mutation. The collection is ordered newest first.
type UseCase struct {
	slot   repository.TaskSlot
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu    sync.RWMutex
	tasks []domain.Task
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(gen func() string) Option {
	return func(uc *UseCase) { uc.newID = gen }
}

func New(slot repository.TaskSlot, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		slot:   slot,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Load replaces the collection with the persisted one. A missing slot yields an empty collection.
func (uc *UseCase) Load(ctx context.Context) error {
	tasks, _, err := uc.slot.Load(ctx)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	uc.tasks = tasks
	uc.mu.Unlock()
	uc.logger.Info("tasks loaded", zap.Int("count", len(tasks)))
	return nil
}

// List returns a copy of the collection.
func (uc *UseCase) List() []domain.Task {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]domain.Task, len(uc.tasks))
	copy(out, uc.tasks)
	return out
}

func (uc *UseCase) Get(id string) (*domain.Task, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if i := uc.indexOf(id); i >= 0 {
		task := uc.tasks[i]
		return &task, true
	}
	return nil, false
}

// Add validates the input, prepends a new task and persists the collection.
func (uc *UseCase) Add(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	in, priority, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	now := uc.now()
	task := domain.Task{
		ID:          uc.newID(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	for uc.indexOf(task.ID) >= 0 {
		task.ID = uc.newID()
	}

	next := make([]domain.Task, 0, len(uc.tasks)+1)
	next = append(next, task)
	next = append(next, uc.tasks...)
	if err := uc.commit(ctx, next); err != nil {
		return nil, err
	}

	uc.logger.Debug("task added", zap.String("task_id", task.ID))
	return &task, nil
}

// Update merges patch into the task with the given id. An unknown id is a
// silent no-op reported as (nil, nil), whatever the patch holds.
func (uc *UseCase) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.indexOf(id)
	if i < 0 {
		uc.logger.Debug("update ignored, task not found", zap.String("task_id", id))
		return nil, nil
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return uc.replace(ctx, i, patch)
}

// ToggleComplete flips the completion flag. An unknown id is a silent no-op.
func (uc *UseCase) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.indexOf(id)
	if i < 0 {
		uc.logger.Debug("toggle ignored, task not found", zap.String("task_id", id))
		return nil, nil
	}
	completed := !uc.tasks[i].Completed
	return uc.replace(ctx, i, domain.TaskPatch{Completed: &completed})
}

// Remove deletes the task with the given id and reports whether it existed.
func (uc *UseCase) Remove(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := uc.indexOf(id)
	if i < 0 {
		uc.logger.Debug("remove ignored, task not found", zap.String("task_id", id))
		return false, nil
	}

	next := make([]domain.Task, 0, len(uc.tasks)-1)
	next = append(next, uc.tasks[:i]...)
	next = append(next, uc.tasks[i+1:]...)
	if err := uc.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops every task and the persisted slot.
func (uc *UseCase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.slot.Clear(ctx); err != nil {
		uc.logger.Error("failed to clear task slot", zap.Error(err))
		return fmt.Errorf("clear tasks: %w", err)
	}
	uc.tasks = nil
	uc.logger.Info("tasks cleared")
	return nil
}

// replace must be called with mu held.
func (uc *UseCase) replace(ctx context.Context, i int, patch domain.TaskPatch) (*domain.Task, error) {
	updated := patch.Apply(uc.tasks[i], uc.now())

	next := make([]domain.Task, len(uc.tasks))
	copy(next, uc.tasks)
	next[i] = updated
	if err := uc.commit(ctx, next); err != nil {
		return nil, err
	}
	return &updated, nil
}

// commit persists next and only then makes it visible. mu must be held.
func (uc *UseCase) commit(ctx context.Context, next []domain.Task) error {
	if err := uc.slot.Save(ctx, next); err != nil {
		uc.logger.Error("failed to persist tasks", zap.Int("count", len(next)), zap.Error(err))
		return fmt.Errorf("persist tasks: %w", err)
	}
	uc.tasks = next
	return nil
}

func (uc *UseCase) indexOf(id string) int {
	for i := range uc.tasks {
		if uc.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
