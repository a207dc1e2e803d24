package taskview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
)

func fixture() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "Buy groceries", Description: "milk, eggs", Priority: domain.PriorityLow},
		{ID: "2", Title: "File taxes", Description: "before April", Completed: true, Priority: domain.PriorityHigh},
		{ID: "3", Title: "Call mom", Priority: domain.PriorityHigh},
		{ID: "4", Title: "Book flights", Description: "Cheap ones", Completed: true, Priority: domain.PriorityMedium},
		{ID: "5", Title: "Read a book", Priority: domain.PriorityMedium},
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseTag(t *testing.T) {
	for in, want := range map[string]Tag{"": TagAll, "all": TagAll, "Active": TagActive, " completed ": TagCompleted} {
		got, err := ParseTag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTag("done")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestFilter(t *testing.T) {
	tasks := fixture()
	tests := []struct {
		name   string
		tag    Tag
		search string
		want   []string
	}{
		{name: "all", tag: TagAll, want: []string{"1", "2", "3", "4", "5"}},
		{name: "active", tag: TagActive, want: []string{"1", "3", "5"}},
		{name: "completed", tag: TagCompleted, want: []string{"2", "4"}},
		{name: "search title case insensitive", tag: TagAll, search: "BOOK", want: []string{"4", "5"}},
		{name: "search description", tag: TagAll, search: "april", want: []string{"2"}},
		{name: "tag and search are anded", tag: TagActive, search: "book", want: []string{"5"}},
		{name: "no match", tag: TagCompleted, search: "groceries", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(tasks, tt.tag, tt.search)))
		})
	}
	assert.Equal(t, fixture(), tasks, "input must not be mutated")
}

func TestFilterCompletedMatchesSubset(t *testing.T) {
	tasks := fixture()
	got := Filter(tasks, TagCompleted, "")
	for _, task := range got {
		assert.True(t, task.Completed)
	}
	var want int
	for _, task := range tasks {
		if task.Completed {
			want++
		}
	}
	assert.Len(t, got, want)
}

func TestCountByTag(t *testing.T) {
	tasks := fixture()
	c := CountByTag(tasks)
	assert.Equal(t, Counts{All: 5, Active: 3, Completed: 2}, c)
	assert.Equal(t, c.All, c.Active+c.Completed)

	tasks[0].Completed = true
	assert.Equal(t, Counts{All: 5, Active: 2, Completed: 3}, CountByTag(tasks))
	assert.Equal(t, Counts{}, CountByTag(nil))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{
		Total:          5,
		Completed:      2,
		Active:         3,
		HighPriority:   1,
		CompletionRate: 40,
	}, Summarize(fixture()))

	assert.Equal(t, Summary{}, Summarize(nil))

	firstThree := fixture()[:3]
	assert.Equal(t, 33, Summarize(firstThree).CompletionRate)
}
