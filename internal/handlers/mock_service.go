package handlers

import (
	"context"

	"linkfeed/internal/models"
	"linkfeed/internal/service"
)

// ---- Service Mocks (used by handler tests) ----

type mockAuth struct {
	signUpPayload models.AuthPayload
	signUpErr     error
	loginPayload  models.AuthPayload
	loginErr      error
	parseID       int64
	parseErr      error

	lastSignUpEmail string
	lastSignUpName  string
	lastLoginEmail  string
	lastParseToken  string
}

func (m *mockAuth) SignUp(_ context.Context, email, _, name string) (models.AuthPayload, error) {
	m.lastSignUpEmail = email
	m.lastSignUpName = name
	return m.signUpPayload, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, email, _ string) (models.AuthPayload, error) {
	m.lastLoginEmail = email
	return m.loginPayload, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockLinks struct {
	postLink models.Link
	postErr  error
	getLink  models.Link
	getErr   error
	feed     models.Feed
	feedErr  error

	lastPostCaller int64
	lastPostURL    string
	lastGetID      int64
	lastFeedQuery  service.FeedQuery
	postCalls      int
	feedCalls      int
}

func (m *mockLinks) Post(_ context.Context, callerID int64, url, _ string) (models.Link, error) {
	m.postCalls++
	m.lastPostCaller = callerID
	m.lastPostURL = url
	return m.postLink, m.postErr
}

func (m *mockLinks) Get(_ context.Context, id int64) (models.Link, error) {
	m.lastGetID = id
	return m.getLink, m.getErr
}

func (m *mockLinks) Feed(_ context.Context, q service.FeedQuery) (models.Feed, error) {
	m.feedCalls++
	m.lastFeedQuery = q
	return m.feed, m.feedErr
}

type mockVotes struct {
	vote    models.Vote
	castErr error

	lastCaster int64
	lastLinkID int64
	castCalls  int
}

func (m *mockVotes) Cast(_ context.Context, callerID, linkID int64) (models.Vote, error) {
	m.castCalls++
	m.lastCaster = callerID
	m.lastLinkID = linkID
	return m.vote, m.castErr
}
