package posts

// State is the browse state of the post list: search text, current page and
// page size. It is never persisted.
type State struct {
	search   string
	page     int
	pageSize int
}

func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = 6
	}
	return State{page: 1, pageSize: pageSize}
}

func (s State) Search() string { return s.search }
func (s State) Page() int      { return s.page }
func (s State) PageSize() int  { return s.pageSize }

// SetSearch changes the search text. Any change sends the user back to page 1.
func (s State) SetSearch(text string) State {
	if text != s.search {
		s.search = text
		s.page = 1
	}
	return s
}

// SetPage moves to page, clamped to [1, totalPages]. With no pages at all the state stays on page 1.
func (s State) SetPage(page, totalPages int) State {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	s.page = page
	return s
}
