package model

import "time"

// Blog represents a published blog post.
//
// AuthorID is fixed at creation and never changes — ownership checks in the
// service layer compare it against the authenticated user's ID. CreatedAt is
// set once by the repository; UpdatedAt changes on every mutation.
//
// LikesCount is denormalised: it always equals the number of rows in the
// likes table for this blog. The repository adjusts it in the same
// transaction that inserts or deletes the Like row, so the two can't drift.
type Blog struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	LikesCount int       `json:"likesCount"`
}
