package models

import "time"

// Post is an owned resource. Author is set from the authenticated caller at
// creation time and never reassigned; only the author may update or delete
// the post.
type Post struct {
	ID        string
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
}
