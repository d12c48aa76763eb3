package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkfeed/internal/models"
	"linkfeed/internal/pubsub"

	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, sub *pubsub.Subscription) pubsub.Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return pubsub.Event{}
	}
}

func requireNoEvent(t *testing.T, sub *pubsub.Subscription) {
	t.Helper()
	select {
	case ev := <-sub.Events():
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLinkService_Post(t *testing.T) {
	links := newFakeLinks()
	bus := pubsub.New(nil)
	svc := NewLinkService(links, bus)

	sub := bus.Subscribe(pubsub.TopicNewLink)
	defer sub.Close()

	link, err := svc.Post(context.Background(), 7, "www.howtographql.com", "Fullstack tutorial for GraphQL")
	require.NoError(t, err)
	require.Equal(t, int64(7), link.PostedBy.ID, "created link's owner equals the caller")

	// exactly one publish per successful post
	ev := recvEvent(t, sub)
	require.Equal(t, pubsub.TopicNewLink, ev.Topic)
	require.Equal(t, link, ev.Payload)
	requireNoEvent(t, sub)
}

func TestLinkService_PostUnauthenticated(t *testing.T) {
	links := newFakeLinks()
	bus := pubsub.New(nil)
	svc := NewLinkService(links, bus)

	sub := bus.Subscribe(pubsub.TopicNewLink)
	defer sub.Close()

	_, err := svc.Post(context.Background(), 0, "www.example.com", "desc")
	require.ErrorIs(t, err, ErrUnauthenticated)
	requireNoEvent(t, sub)
	require.Empty(t, links.byID, "no link created for anonymous caller")
}

func TestLinkService_PostEmptyURL(t *testing.T) {
	svc := NewLinkService(newFakeLinks(), pubsub.New(nil))

	_, err := svc.Post(context.Background(), 7, "  ", "desc")
	require.Error(t, err)
}

func TestLinkService_Feed(t *testing.T) {
	links := newFakeLinks()
	links.findResult = []models.Link{
		{ID: 1, URL: "www.howtographql.com", Description: "Fullstack tutorial for GraphQL"},
	}
	links.countVal = 9 // total matches, larger than the returned page
	svc := NewLinkService(links, pubsub.New(nil))

	feed, err := svc.Feed(context.Background(), FeedQuery{
		Filter:   "graphql",
		Skip:     2,
		Take:     1,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	require.NoError(t, err)

	require.Equal(t, "main-feed", feed.ID)
	require.Len(t, feed.Links, 1)
	require.Equal(t, int64(9), feed.Count, "count reflects the filtered total, not the page")

	// the query reached the store intact, and the count used the same
	// filter without pagination
	require.Equal(t, "graphql", links.lastQuery.Filter)
	require.Equal(t, uint64(2), links.lastQuery.Skip)
	require.Equal(t, uint64(1), links.lastQuery.Take)
	require.Equal(t, "created_at", links.lastQuery.OrderBy)
	require.Equal(t, "graphql", links.lastFilter)
}

func TestLinkService_FeedStoreError(t *testing.T) {
	links := newFakeLinks()
	links.findErr = errors.New("db down")
	svc := NewLinkService(links, pubsub.New(nil))

	_, err := svc.Feed(context.Background(), FeedQuery{})
	require.Error(t, err)
}

func TestLinkService_Get(t *testing.T) {
	links := newFakeLinks()
	bus := pubsub.New(nil)
	svc := NewLinkService(links, bus)

	created, err := svc.Post(context.Background(), 7, "www.example.com", "desc")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = svc.Get(context.Background(), 999)
	require.ErrorIs(t, err, ErrLinkNotFound)
}
