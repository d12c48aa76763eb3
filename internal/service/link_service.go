package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linkfeed/internal/models"
	"linkfeed/internal/pubsub"
	"linkfeed/internal/repository"
)

// feedID is the fixed identifier of the single computed feed view.
const feedID = "main-feed"

// LinkService is the write path for posting links and the read path
// for the feed query.
//
// The feed deliberately does not rank by vote count. "Newest" views
// are store-ordered by created_at; "top" views are a caller concern:
// the caller fetches an unfiltered batch (typically up to 100 links)
// and ranks it client-side using the vote counts carried on each
// link. Moving that ranking into the store would silently change the
// observed behavior, which caps "top" at the fetched batch size.
type LinkService struct {
	links repository.Links
	bus   *pubsub.Bus
}

func NewLinkService(links repository.Links, bus *pubsub.Bus) *LinkService {
	return &LinkService{links: links, bus: bus}
}

var (
	errEmptyURL = errors.New("url is empty")
)

// Post creates a link owned by callerID and publishes exactly one
// NEW_LINK event carrying the created link.
func (s *LinkService) Post(ctx context.Context, callerID int64, url, description string) (models.Link, error) {
	if callerID == 0 {
		return models.Link{}, ErrUnauthenticated
	}
	if strings.TrimSpace(url) == "" {
		return models.Link{}, errEmptyURL
	}

	link, err := s.links.Create(ctx, url, description, callerID)
	if err != nil {
		return models.Link{}, fmt.Errorf("post link: %w", err)
	}

	s.bus.Publish(pubsub.TopicNewLink, link)
	return link, nil
}

// Get fetches a single link by id.
func (s *LinkService) Get(ctx context.Context, id int64) (models.Link, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Link{}, ErrLinkNotFound
		}
		return models.Link{}, err
	}
	return link, nil
}

// Feed returns the links matching q plus the total match count. The
// count is computed over the same filter but independently of
// skip/take, so pagination never changes it. No side effects.
func (s *LinkService) Feed(ctx context.Context, q FeedQuery) (models.Feed, error) {
	rq := repository.FeedQuery{
		Filter:   q.Filter,
		Skip:     q.Skip,
		Take:     q.Take,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}

	links, err := s.links.FindMany(ctx, rq)
	if err != nil {
		return models.Feed{}, fmt.Errorf("query feed: %w", err)
	}

	count, err := s.links.Count(ctx, q.Filter)
	if err != nil {
		return models.Feed{}, fmt.Errorf("count feed: %w", err)
	}

	return models.Feed{ID: feedID, Links: links, Count: count}, nil
}
