package service

import (
	"context"
	"sync"
	"time"

	"linkfeed/internal/models"
	"linkfeed/internal/repository"
)

// In-memory stand-ins for the repository layer. fakeVotes enforces the
// (link, user) uniqueness atomically under its own lock, mirroring the
// store's constraint, so the race behavior of Cast can be exercised.

type fakeUsers struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]models.User

	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]models.User)}
}

func (f *fakeUsers) Create(_ context.Context, email, name, passwordHash string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	if _, exists := f.byEmail[email]; exists {
		return models.User{}, repository.ErrUniqueViolation
	}
	f.nextID++
	u := models.User{
		ID:           f.nextID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

type fakeLinks struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Link

	// captured feed inputs
	lastQuery  repository.FeedQuery
	lastFilter string

	// configured feed outputs
	findResult []models.Link
	findErr    error
	countVal   int64
	countErr   error
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{byID: make(map[int64]models.Link)}
}

func (f *fakeLinks) Create(_ context.Context, url, description string, postedBy int64) (models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l := models.Link{
		ID:          f.nextID,
		URL:         url,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		PostedBy:    models.User{ID: postedBy},
	}
	f.byID[l.ID] = l
	return l, nil
}

func (f *fakeLinks) GetByID(_ context.Context, id int64) (models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byID[id]
	if !ok {
		return models.Link{}, repository.ErrNotFound
	}
	return l, nil
}

func (f *fakeLinks) FindMany(_ context.Context, q repository.FeedQuery) ([]models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	return f.findResult, f.findErr
}

func (f *fakeLinks) Count(_ context.Context, filter string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return f.countVal, f.countErr
}

type pair struct{ linkID, userID int64 }

type fakeVotes struct {
	mu     sync.Mutex
	nextID int64
	votes  map[pair]int64

	// precheckMiss makes GetByPair always report no vote, simulating
	// two requests both observing "no vote yet" before inserting.
	precheckMiss bool
}

func newFakeVotes() *fakeVotes {
	return &fakeVotes{votes: make(map[pair]int64)}
}

func (f *fakeVotes) Create(_ context.Context, linkID, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pair{linkID, userID}
	if _, exists := f.votes[key]; exists {
		return 0, repository.ErrUniqueViolation
	}
	f.nextID++
	f.votes[key] = f.nextID
	return f.nextID, nil
}

func (f *fakeVotes) GetByPair(_ context.Context, linkID, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.precheckMiss {
		return 0, repository.ErrNotFound
	}
	id, ok := f.votes[pair{linkID, userID}]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return id, nil
}
