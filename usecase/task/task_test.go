package task

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository/memory"
	"github.com/fastygo/taskboard/repository/slot"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type flakySlot struct {
	*slot.Slot[[]domain.Task]
	fail error
}

func (f *flakySlot) Save(ctx context.Context, tasks []domain.Task) error {
	if f.fail != nil {
		return f.fail
	}
	return f.Slot.Save(ctx, tasks)
}

func newUseCase(t *testing.T) (*UseCase, *slot.Slot[[]domain.Task]) {
	t.Helper()
	s := slot.New[[]domain.Task](memory.NewStore(), "tasks")
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	seq := 0
	uc := New(s, nil,
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("task-%d", seq)
		}),
	)
	require.NoError(t, uc.Load(context.Background()))
	return uc, s
}

func TestAddThenGet(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.Add(ctx, domain.TaskInput{Title: " Write report ", Description: "draft", Priority: "high"})
	require.NoError(t, err)

	got, ok := uc.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "draft", got.Description)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.False(t, got.Completed)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestAddPrependsAndPersists(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	first, err := uc.Add(ctx, domain.TaskInput{Title: "first"})
	require.NoError(t, err)
	second, err := uc.Add(ctx, domain.TaskInput{Title: "second"})
	require.NoError(t, err)

	list := uc.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, domain.PriorityMedium, list[1].Priority)

	persisted, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, list, persisted)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Add(ctx, domain.TaskInput{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = uc.Add(ctx, domain.TaskInput{Title: "ok", Priority: "critical"})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	assert.Empty(t, uc.List())
	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found, "nothing may be written on validation failure")
}

func TestAddSkipsDuplicateIDs(t *testing.T) {
	s := slot.New[[]domain.Task](memory.NewStore(), "tasks")
	ids := []string{"same", "same", "other"}
	uc := New(s, nil, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	ctx := context.Background()

	a, err := uc.Add(ctx, domain.TaskInput{Title: "a"})
	require.NoError(t, err)
	b, err := uc.Add(ctx, domain.TaskInput{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestUpdate(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.Add(ctx, domain.TaskInput{Title: "draft"})
	require.NoError(t, err)

	title, desc := "final", "reviewed"
	updated, err := uc.Update(ctx, created.ID, domain.TaskPatch{Title: &title, Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated)

	got, ok := uc.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "reviewed", got.Description)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Add(ctx, domain.TaskInput{Title: "keep"})
	require.NoError(t, err)
	before := uc.List()

	title := "changed"
	updated, err := uc.Update(ctx, "missing", domain.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Equal(t, before, uc.List())
}

func TestUpdateUnknownIDIgnoresInvalidPatch(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	empty, bad := "", "urgent"
	updated, err := uc.Update(ctx, "missing", domain.TaskPatch{Title: &empty, Priority: &bad})
	require.NoError(t, err)
	assert.Nil(t, updated)

	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found, "nothing is written for an unknown id")
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Add(ctx, domain.TaskInput{Title: "keep"})
	require.NoError(t, err)

	empty := " "
	_, err = uc.Update(ctx, created.ID, domain.TaskPatch{Title: &empty})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	got, _ := uc.Get(created.ID)
	assert.Equal(t, "keep", got.Title)
}

func TestRemove(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()
	a, err := uc.Add(ctx, domain.TaskInput{Title: "a"})
	require.NoError(t, err)
	b, err := uc.Add(ctx, domain.TaskInput{Title: "b"})
	require.NoError(t, err)

	removed, err := uc.Remove(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	_, ok := uc.Get(a.ID)
	assert.False(t, ok)

	removed, err = uc.Remove(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	persisted, _, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, b.ID, persisted[0].ID)
}

func TestToggleComplete(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Add(ctx, domain.TaskInput{Title: "toggle me"})
	require.NoError(t, err)

	toggled, err := uc.ToggleComplete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = uc.ToggleComplete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.True(t, toggled.UpdatedAt.After(created.UpdatedAt))

	toggled, err = uc.ToggleComplete(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, toggled)
}

func TestFailedSaveLeavesCollectionUntouched(t *testing.T) {
	boom := errors.New("disk full")
	flaky := &flakySlot{Slot: slot.New[[]domain.Task](memory.NewStore(), "tasks")}
	uc := New(flaky, nil)
	ctx := context.Background()

	created, err := uc.Add(ctx, domain.TaskInput{Title: "stable"})
	require.NoError(t, err)
	before := uc.List()

	flaky.fail = boom
	_, err = uc.Add(ctx, domain.TaskInput{Title: "lost"})
	assert.ErrorIs(t, err, boom)
	_, err = uc.ToggleComplete(ctx, created.ID)
	assert.ErrorIs(t, err, boom)
	_, err = uc.Remove(ctx, created.ID)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, before, uc.List())
}

func TestReloadRoundTrip(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := uc.Add(ctx, domain.TaskInput{Title: fmt.Sprintf("task %d", i), Priority: "low"})
		require.NoError(t, err)
	}
	_, err := uc.ToggleComplete(ctx, uc.List()[2].ID)
	require.NoError(t, err)

	reloaded := New(s, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, uc.List(), reloaded.List())
}

func TestClear(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Add(ctx, domain.TaskInput{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx))
	assert.Empty(t, uc.List())
	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
