package model

import "time"

// Comment is a user's comment under a blog post. Like blogs, the author is
// fixed at creation. Comments are immutable — there is no update operation,
// so no UpdatedAt field.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	BlogID    string    `json:"blogId"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}
