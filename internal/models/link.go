package models

import "time"

// Link is a shared URL. PostedBy is resolved from the owning user row;
// every link has exactly one poster, set at creation and never changed.
type Link struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	PostedBy    User      `json:"posted_by"`
	Votes       int64     `json:"votes"`
}
