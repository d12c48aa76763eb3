package service

import (
	"context"
	"errors"
	"fmt"

	"linkfeed/internal/models"
	"linkfeed/internal/pubsub"
	"linkfeed/internal/repository"
)

// VoteService is the vote write path.
type VoteService struct {
	votes repository.Votes
	links repository.Links
	users repository.Users
	bus   *pubsub.Bus
}

func NewVoteService(votes repository.Votes, links repository.Links, users repository.Users, bus *pubsub.Bus) *VoteService {
	return &VoteService{votes: votes, links: links, users: users, bus: bus}
}

// Cast records callerID's vote on linkID and publishes exactly one
// NEW_VOTE event carrying the vote with its user and link resolved.
//
// The existing-vote lookup is a fast-fail optimization only. Two
// requests racing on the same (user, link) pair can both observe "no
// vote yet"; the store's unique constraint on the pair then rejects
// the second insert, and that rejection is mapped to ErrDuplicateVote
// exactly like the pre-check hit. At most one vote row ever exists.
func (s *VoteService) Cast(ctx context.Context, callerID, linkID int64) (models.Vote, error) {
	if callerID == 0 {
		return models.Vote{}, ErrUnauthenticated
	}

	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Vote{}, ErrLinkNotFound
		}
		return models.Vote{}, err
	}

	if _, err := s.votes.GetByPair(ctx, linkID, callerID); err == nil {
		return models.Vote{}, ErrDuplicateVote
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.Vote{}, err
	}

	voteID, err := s.votes.Create(ctx, linkID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return models.Vote{}, ErrDuplicateVote
		}
		return models.Vote{}, fmt.Errorf("cast vote: %w", err)
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return models.Vote{}, fmt.Errorf("resolve voter: %w", err)
	}

	// The created vote bumps the link's count; reflect that in the
	// event payload without a re-read.
	link.Votes++

	vote := models.Vote{ID: voteID, Link: link, User: user}
	s.bus.Publish(pubsub.TopicNewVote, vote)
	return vote, nil
}
