package service

import "errors"

// Domain errors. Each is terminal for the operation that returned it;
// nothing is retried and no partial mutation is left behind. Match
// with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrDuplicateVote   = errors.New("already voted for this link")
	ErrLinkNotFound    = errors.New("link not found")
	ErrInvalidToken    = errors.New("invalid token")
)
