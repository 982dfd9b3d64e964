package model

// Like records that a user liked a blog post.
//
// The (BlogID, UserID) pair is UNIQUE at the storage level. A user's "like
// state" for a blog is therefore a two-state machine: a row exists (liked)
// or it doesn't (not liked). The PUT /blogs/{id}/like endpoint toggles
// between the two.
type Like struct {
	ID     string `json:"id"`
	BlogID string `json:"blogId"`
	UserID string `json:"userId"`
}
