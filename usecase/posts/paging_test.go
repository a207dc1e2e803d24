package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/taskboard/domain"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := numbers(13)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, Paginate(items, 1, 6))
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, Paginate(items, 2, 6))
	assert.Equal(t, []int{13}, Paginate(items, 3, 6))
	assert.Empty(t, Paginate(items, 4, 6))
	assert.Empty(t, Paginate(items, 0, 6))
	assert.Empty(t, Paginate(items, -2, 6))
	assert.Empty(t, Paginate(items, 1, 0))
	assert.Empty(t, Paginate([]int{}, 1, 6))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(13, 6))
	assert.Equal(t, 2, TotalPages(12, 6))
	assert.Equal(t, 1, TotalPages(1, 6))
	assert.Equal(t, 0, TotalPages(0, 6))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{current: 1, total: 10, want: []int{1, 2, 3, 4, 5}},
		{current: 3, total: 10, want: []int{1, 2, 3, 4, 5}},
		{current: 5, total: 10, want: []int{3, 4, 5, 6, 7}},
		{current: 8, total: 10, want: []int{6, 7, 8, 9, 10}},
		{current: 10, total: 10, want: []int{6, 7, 8, 9, 10}},
		{current: 2, total: 3, want: []int{1, 2, 3}},
		{current: 5, total: 5, want: []int{1, 2, 3, 4, 5}},
		{current: 1, total: 0, want: []int{}},
	}
	for _, tt := range tests {
		got := PageWindow(tt.current, tt.total)
		assert.Equal(t, tt.want, got, "current=%d total=%d", tt.current, tt.total)
		assert.LessOrEqual(t, len(got), 5)
	}
}

func TestSearch(t *testing.T) {
	posts := []domain.Post{
		{ID: 1, Title: "Hello World", Body: "first"},
		{ID: 2, Title: "Another", Body: "says hello"},
		{ID: 3, Title: "Nothing", Body: "here"},
	}
	got := Search(posts, "HELLO")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	assert.Len(t, Search(posts, ""), 3)
	assert.Empty(t, Search(posts, "missing"))
}

func TestStateSearchResetsPage(t *testing.T) {
	s := NewState(6).SetPage(3, 5)
	assert.Equal(t, 3, s.Page())

	s = s.SetSearch("x")
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "x", s.Search())

	s = s.SetPage(2, 5).SetSearch("x")
	assert.Equal(t, 2, s.Page(), "unchanged text keeps the page")
}

func TestStateSetPageClamps(t *testing.T) {
	s := NewState(0)
	assert.Equal(t, 6, s.PageSize())
	assert.Equal(t, 4, s.SetPage(9, 4).Page())
	assert.Equal(t, 1, s.SetPage(-1, 4).Page())
	assert.Equal(t, 1, s.SetPage(3, 0).Page())
}
