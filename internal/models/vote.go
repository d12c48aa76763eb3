package models

// Vote records one user's single upvote on a link. The (link, user)
// pair is unique; the store rejects a second insert for the same pair.
// Event consumers key on the resolved Link and User shapes.
type Vote struct {
	ID   int64 `json:"id"`
	Link Link  `json:"link"`
	User User  `json:"user"`
}
