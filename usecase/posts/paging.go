package posts

import "github.com/fastygo/taskboard/domain"

// windowSize is the maximum number of page buttons offered at once.
const windowSize = 5

// Search returns the posts whose title or body contains text, ignoring case.
func Search(posts []domain.Post, text string) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for i := range posts {
		if posts[i].Matches(text) {
			out = append(out, posts[i])
		}
	}
	return out
}

// Paginate returns items[(page-1)*size : page*size], clipped to the slice.
// Page validity is the caller's concern; an out-of-range page yields an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	end := page * size
	if start < 0 {
		start = 0
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return []T{}
	}
	return items[start:end]
}

// TotalPages is ceil(total/size); an empty collection has zero pages.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageWindow returns up to five contiguous page numbers around current.
// Near the start the window is 1..5, near the end it is total-4..total,
// otherwise current-2..current+2.
func PageWindow(current, total int) []int {
	n := min(windowSize, total)
	if n <= 0 {
		return []int{}
	}

	first := current - 2
	switch {
	case total <= windowSize:
		first = 1
	case current <= 3:
		first = 1
	case current >= total-2:
		first = total - windowSize + 1
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}
