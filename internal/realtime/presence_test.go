package realtime_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/internal/realtime"
)

type fakeStatusStore struct {
	err   error
	calls []string
}

func (s *fakeStatusStore) SetOnline(_ context.Context, userID string, online bool) error {
	if s.err != nil {
		return s.err
	}
	state := "offline"
	if online {
		state = "online"
	}
	s.calls = append(s.calls, userID+":"+state)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnnounceOnlinePersistsThenBroadcasts(t *testing.T) {
	reg := realtime.NewRegistry()
	store := &fakeStatusStore{}
	pres := realtime.NewPresence(reg, store, nil, discardLogger())

	bob := newFakeChannel("bob-ch")
	reg.Register("bob", bob)

	require.NoError(t, pres.AnnounceOnline(context.Background(), "alice"))

	assert.Equal(t, []string{"alice:online"}, store.calls)
	events := bob.events()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventUserOnline, events[0].Type)
	assert.Equal(t, "alice", events[0].UserID)
}

func TestAnnounceOnlinePersistenceFailureAbortsBroadcast(t *testing.T) {
	reg := realtime.NewRegistry()
	store := &fakeStatusStore{err: errors.New("db down")}
	pres := realtime.NewPresence(reg, store, nil, discardLogger())

	bob := newFakeChannel("bob-ch")
	reg.Register("bob", bob)

	err := pres.AnnounceOnline(context.Background(), "alice")
	require.Error(t, err)
	assert.Empty(t, bob.events())
}

func TestAnnounceOfflineBroadcastsToAllChannels(t *testing.T) {
	reg := realtime.NewRegistry()
	store := &fakeStatusStore{}
	pres := realtime.NewPresence(reg, store, nil, discardLogger())

	bob := newFakeChannel("bob-ch")
	carol := newFakeChannel("carol-ch")
	reg.Register("bob", bob)
	reg.Register("carol", carol)

	require.NoError(t, pres.AnnounceOffline(context.Background(), "alice"))

	assert.Equal(t, []string{"alice:offline"}, store.calls)
	for _, ch := range []*fakeChannel{bob, carol} {
		events := ch.events()
		require.Len(t, events, 1)
		assert.Equal(t, realtime.EventUserOffline, events[0].Type)
	}
}

type fakePresenceCache struct {
	err    error
	writes []string
}

func (c *fakePresenceCache) SetPresence(_ context.Context, userID string, online bool) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, userID)
	return nil
}

func TestCacheFailureDoesNotBlockAnnounce(t *testing.T) {
	reg := realtime.NewRegistry()
	store := &fakeStatusStore{}
	cache := &fakePresenceCache{err: errors.New("redis down")}
	pres := realtime.NewPresence(reg, store, cache, discardLogger())

	bob := newFakeChannel("bob-ch")
	reg.Register("bob", bob)

	require.NoError(t, pres.AnnounceOnline(context.Background(), "alice"))
	assert.Len(t, bob.events(), 1)
}
