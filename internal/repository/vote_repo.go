package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

var _ Votes = (*VoteRepository)(nil)

const (
	insertVoteSQL       = `INSERT INTO votes (link_id, user_id) VALUES (?, ?)`
	selectVoteByPairSQL = `SELECT id FROM votes WHERE link_id = ? AND user_id = ?`
)

// Create inserts a vote and returns its id. A second vote for the
// same (link, user) pair is rejected by the UNIQUE constraint and
// surfaces as ErrUniqueViolation; this holds even when two inserts
// race, which is what makes the pair invariant safe under concurrency.
func (r *VoteRepository) Create(ctx context.Context, linkID, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertVoteSQL, linkID, userID)
	if err != nil {
		return 0, translateUnique(fmt.Sprintf("insert vote link=%d user=%d", linkID, userID), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for vote link=%d user=%d: %w", linkID, userID, err)
	}
	return lastID, nil
}

// GetByPair fetches the vote id for (linkID, userID).
// Returns ErrNotFound if the pair has no vote.
func (r *VoteRepository) GetByPair(ctx context.Context, linkID, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, selectVoteByPairSQL, linkID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("select vote link=%d user=%d: %w", linkID, userID, ErrNotFound)
		}
		return 0, fmt.Errorf("select vote link=%d user=%d: %w", linkID, userID, err)
	}
	return id, nil
}
