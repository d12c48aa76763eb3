package repository

import (
	"context"
	"database/sql"
	"errors"

	"linkfeed/internal/models"
)

// Sentinel errors surfaced by the store. ErrUniqueViolation is the
// distinguishable failure for unique-key conflicts (email, vote pair);
// it is the final authority for duplicates even when a pre-check
// raced past the insert. Match with errors.Is.
var (
	ErrNotFound        = errors.New("record not found")
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// FeedQuery carries the feed read contract: an optional case-sensitive
// substring filter over url/description, pagination, and ordering.
// Zero values mean "no filter / no skip / all rows / store order".
type FeedQuery struct {
	Filter   string
	Skip     uint64
	Take     uint64
	OrderBy  string // created_at | url | description
	OrderDir string // asc | desc
}

type Users interface {
	Create(ctx context.Context, email, name, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
}

type Links interface {
	Create(ctx context.Context, url, description string, postedBy int64) (models.Link, error)
	GetByID(ctx context.Context, id int64) (models.Link, error)
	FindMany(ctx context.Context, q FeedQuery) ([]models.Link, error)
	Count(ctx context.Context, filter string) (int64, error)
}

type Votes interface {
	Create(ctx context.Context, linkID, userID int64) (int64, error)
	GetByPair(ctx context.Context, linkID, userID int64) (int64, error)
}

type Repository struct {
	Users Users
	Links Links
	Votes Votes
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Links: NewLinkRepository(db),
		Votes: NewVoteRepository(db),
	}
}
