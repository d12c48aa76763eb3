package service

import (
	"context"

	"linkfeed/internal/models"
	"linkfeed/internal/pubsub"
	"linkfeed/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password, name string) (models.AuthPayload, error)
	Login(ctx context.Context, email, password string) (models.AuthPayload, error)
	ParseToken(accessToken string) (int64, error)
}

// Links exposes the link write path (post) and the feed read path.
type Links interface {
	Post(ctx context.Context, callerID int64, url, description string) (models.Link, error)
	Get(ctx context.Context, id int64) (models.Link, error)
	Feed(ctx context.Context, q FeedQuery) (models.Feed, error)
}

// Votes exposes vote casting. At most one vote per (user, link) pair.
type Votes interface {
	Cast(ctx context.Context, callerID, linkID int64) (models.Vote, error)
}

// FeedQuery is the feed read contract as seen by callers. All fields
// optional; zero values mean no filter, no skip, all rows, store order.
type FeedQuery struct {
	Filter   string
	Skip     uint64
	Take     uint64
	OrderBy  string
	OrderDir string
}

// Config carries construction-time settings. The signing key is
// injected here rather than read from package state so tests and
// deployments control it explicitly.
type Config struct {
	SigningKey string
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Links
	Votes
}

// NewService wires the repository layer and event bus into concrete
// services. Successful mutations publish to bus; reads never do.
func NewService(repos *repository.Repository, bus *pubsub.Bus, cfg Config) *Service {
	auth := NewAuthService(repos.Users, cfg.SigningKey)
	return &Service{
		Authorization: auth,
		Links:         NewLinkService(repos.Links, bus),
		Votes:         NewVoteService(repos.Votes, repos.Links, repos.Users, bus),
	}
}
