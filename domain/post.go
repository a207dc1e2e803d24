package domain

import "strings"

// Post is a read-only article pulled from the remote feed.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

func (p *Post) Matches(query string) bool {
	if p == nil {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Body), q)
}

// Author is the remote user record a Post references through UserID.
type Author struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Feed is one successfully loaded posts+authors pair.
type Feed struct {
	Posts   []Post   `json:"posts"`
	Authors []Author `json:"authors"`
}
