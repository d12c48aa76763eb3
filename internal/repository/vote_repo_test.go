// vote_repo_test.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockVoteRepo(t *testing.T) (*VoteRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewVoteRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestVoteRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantID     int64
		wantErr    error
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertVoteSQL)).
					WithArgs(int64(3), int64(5)).
					WillReturnResult(sqlmock.NewResult(11, 1))
			},
			wantID: 11,
		},
		{
			// The racing-insert case: pre-check saw no vote, but the
			// UNIQUE(link_id, user_id) constraint rejects the insert.
			name: "duplicate pair maps to ErrUniqueViolation",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertVoteSQL)).
					WithArgs(int64(3), int64(5)).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: votes.link_id, votes.user_id (2067)"))
			},
			wantErr: ErrUniqueViolation,
		},
		{
			name: "exec error passes through",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertVoteSQL)).
					WithArgs(int64(3), int64(5)).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr: nil, // generic error, asserted below
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockVoteRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), 3, 5)

			if tt.wantID != 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if id != tt.wantID {
					t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected errors.Is(%v), got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVoteRepository_GetByPair(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockVoteRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectVoteByPairSQL)).
			WithArgs(int64(3), int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		id, err := repo.GetByPair(context.Background(), 3, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 11 {
			t.Fatalf("unexpected id: want 11, got %d", id)
		}
	})

	t.Run("no vote maps to ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockVoteRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectVoteByPairSQL)).
			WithArgs(int64(3), int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByPair(context.Background(), 3, 5)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
