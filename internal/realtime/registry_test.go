package realtime_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/internal/realtime"
)

type fakeChannel struct {
	id string

	mu   sync.Mutex
	sent []realtime.Envelope
}

func newFakeChannel(id string) *fakeChannel {
	return &fakeChannel{id: id}
}

func (c *fakeChannel) ID() string { return c.id }

func (c *fakeChannel) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v.(realtime.Envelope))
	return nil
}

func (c *fakeChannel) Close() {}

func (c *fakeChannel) events() []realtime.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]realtime.Envelope, len(c.sent))
	copy(out, c.sent)
	return out
}

func TestRegisterReplacesExistingChannel(t *testing.T) {
	r := realtime.NewRegistry()
	c1 := newFakeChannel("c1")
	c2 := newFakeChannel("c2")

	r.Register("alice", c1)
	r.Register("alice", c2)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "c2", got.ID())
	assert.Len(t, r.AllChannels(), 1)
}

func TestUnregisterIgnoresStaleChannel(t *testing.T) {
	r := realtime.NewRegistry()
	c1 := newFakeChannel("c1")
	c2 := newFakeChannel("c2")

	r.Register("alice", c1)
	r.Register("alice", c2)

	// A late disconnect from the replaced connection must not evict the
	// newer one.
	assert.False(t, r.Unregister("alice", c1))

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "c2", got.ID())
}

func TestUnregisterRemovesCurrentChannel(t *testing.T) {
	r := realtime.NewRegistry()
	c1 := newFakeChannel("c1")

	r.Register("alice", c1)
	assert.True(t, r.Unregister("alice", c1))

	_, ok := r.Lookup("alice")
	assert.False(t, ok)
	assert.Empty(t, r.AllChannels())
}

func TestLookupMissingUser(t *testing.T) {
	r := realtime.NewRegistry()
	_, ok := r.Lookup("nobody")
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := realtime.NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)
		ch := newFakeChannel("c")
		go func() {
			defer wg.Done()
			r.Register("alice", ch)
		}()
		go func() {
			defer wg.Done()
			if got, ok := r.Lookup("alice"); ok {
				_ = got.ID()
			}
		}()
		go func() {
			defer wg.Done()
			r.Unregister("alice", ch)
		}()
	}
	wg.Wait()
}

func TestOnlineUserIDs(t *testing.T) {
	r := realtime.NewRegistry()
	r.Register("alice", newFakeChannel("c1"))
	r.Register("bob", newFakeChannel("c2"))

	ids := r.OnlineUserIDs()
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}
