package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/infrastructure"
	"ripple/internal/ledger"
)

type memoryRepository struct {
	reactions map[string]*ledger.Reaction
	receipts  map[string]*ledger.ReadReceipt
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		reactions: make(map[string]*ledger.Reaction),
		receipts:  make(map[string]*ledger.ReadReceipt),
	}
}

func key(messageID, messageType, userID string) string {
	return messageID + "|" + messageType + "|" + userID
}

func (r *memoryRepository) GetReaction(_ context.Context, messageID, messageType, userID string) (*ledger.Reaction, error) {
	if re, ok := r.reactions[key(messageID, messageType, userID)]; ok {
		copied := *re
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryRepository) InsertReaction(_ context.Context, re *ledger.Reaction) error {
	r.reactions[key(re.MessageID, re.MessageType, re.UserID)] = re
	return nil
}

func (r *memoryRepository) DeleteReaction(_ context.Context, messageID, messageType, userID string) error {
	delete(r.reactions, key(messageID, messageType, userID))
	return nil
}

func (r *memoryRepository) ReplaceReaction(_ context.Context, re *ledger.Reaction) error {
	r.reactions[key(re.MessageID, re.MessageType, re.UserID)] = re
	return nil
}

func (r *memoryRepository) Counts(_ context.Context, messageID, messageType string) ([]*ledger.ReactionCount, error) {
	byEmoji := make(map[string]int)
	for _, re := range r.reactions {
		if re.MessageID == messageID && re.MessageType == messageType {
			byEmoji[re.Emoji]++
		}
	}
	var counts []*ledger.ReactionCount
	for emoji, n := range byEmoji {
		counts = append(counts, &ledger.ReactionCount{Emoji: emoji, Count: n})
	}
	return counts, nil
}

func (r *memoryRepository) Reactions(_ context.Context, messageID, messageType string) ([]*ledger.Reaction, error) {
	var list []*ledger.Reaction
	for _, re := range r.reactions {
		if re.MessageID == messageID && re.MessageType == messageType {
			list = append(list, re)
		}
	}
	return list, nil
}

func (r *memoryRepository) InsertReceipt(_ context.Context, rc *ledger.ReadReceipt) error {
	k := key(rc.MessageID, rc.MessageType, rc.UserID)
	if _, ok := r.receipts[k]; ok {
		// conflict, keep the first row
		return nil
	}
	r.receipts[k] = rc
	return nil
}

func (r *memoryRepository) Receipts(_ context.Context, messageID, messageType string) ([]*ledger.ReadReceipt, error) {
	var list []*ledger.ReadReceipt
	for _, rc := range r.receipts {
		if rc.MessageID == messageID && rc.MessageType == messageType {
			list = append(list, rc)
		}
	}
	return list, nil
}

func (r *memoryRepository) PurgeMessage(_ context.Context, messageID, messageType string) error {
	for k, re := range r.reactions {
		if re.MessageID == messageID && re.MessageType == messageType {
			delete(r.reactions, k)
		}
	}
	for k, rc := range r.receipts {
		if rc.MessageID == messageID && rc.MessageType == messageType {
			delete(r.receipts, k)
		}
	}
	return nil
}

func TestReactCreatesWhenAbsent(t *testing.T) {
	repo := newMemoryRepository()
	svc := ledger.NewService(repo)

	outcome, err := svc.React(context.Background(), "m1", "direct", "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, ledger.Created, outcome)

	reactions, err := svc.Reactions(context.Background(), "m1", "direct")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "👍", reactions[0].Emoji)
}

func TestReactSameEmojiToggleOff(t *testing.T) {
	repo := newMemoryRepository()
	svc := ledger.NewService(repo)

	_, err := svc.React(context.Background(), "m1", "direct", "alice", "👍")
	require.NoError(t, err)

	outcome, err := svc.React(context.Background(), "m1", "direct", "alice", "👍")
	require.NoError(t, err)
	assert.Equal(t, ledger.Removed, outcome)

	reactions, err := svc.Reactions(context.Background(), "m1", "direct")
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestReactDifferentEmojiReplaces(t *testing.T) {
	repo := newMemoryRepository()
	svc := ledger.NewService(repo)

	_, err := svc.React(context.Background(), "m1", "direct", "alice", "👍")
	require.NoError(t, err)

	outcome, err := svc.React(context.Background(), "m1", "direct", "alice", "❤️")
	require.NoError(t, err)
	assert.Equal(t, ledger.Replaced, outcome)

	// Exactly one row per (message,user), carrying the new emoji.
	reactions, err := svc.Reactions(context.Background(), "m1", "direct")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "❤️", reactions[0].Emoji)
}

func TestReactRejectsUnknownEmoji(t *testing.T) {
	svc := ledger.NewService(newMemoryRepository())

	_, err := svc.React(context.Background(), "m1", "direct", "alice", "🔥")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidInput)
}

func TestReactRejectsUnknownMessageType(t *testing.T) {
	svc := ledger.NewService(newMemoryRepository())

	_, err := svc.React(context.Background(), "m1", "broadcast", "alice", "👍")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidInput)
}

func TestCountsAggregatePerEmoji(t *testing.T) {
	repo := newMemoryRepository()
	svc := ledger.NewService(repo)

	for _, user := range []string{"alice", "bob"} {
		_, err := svc.React(context.Background(), "m1", "group", user, "👍")
		require.NoError(t, err)
	}
	_, err := svc.React(context.Background(), "m1", "group", "carol", "😂")
	require.NoError(t, err)

	counts, err := svc.Counts(context.Background(), "m1", "group")
	require.NoError(t, err)

	byEmoji := make(map[string]int)
	for _, c := range counts {
		byEmoji[c.Emoji] = c.Count
	}
	assert.Equal(t, 2, byEmoji["👍"])
	assert.Equal(t, 1, byEmoji["😂"])
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := newMemoryRepository()
	svc := ledger.NewService(repo)

	ids := []string{"m1", "m2"}
	require.NoError(t, svc.MarkRead(context.Background(), "bob", ids, "direct"))
	require.NoError(t, svc.MarkRead(context.Background(), "bob", ids, "direct"))

	for _, id := range ids {
		receipts, err := svc.Receipts(context.Background(), id, "direct")
		require.NoError(t, err)
		assert.Len(t, receipts, 1)
	}
}

func TestMarkReadRejectsUnknownMessageType(t *testing.T) {
	svc := ledger.NewService(newMemoryRepository())

	err := svc.MarkRead(context.Background(), "bob", []string{"m1"}, "broadcast")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidInput)
}

func TestPurgeMessageRemovesReactionsAndReceipts(t *testing.T) {
	repo := newMemoryRepository()
	svc := ledger.NewService(repo)

	_, err := svc.React(context.Background(), "m1", "direct", "alice", "👍")
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(context.Background(), "bob", []string{"m1"}, "direct"))

	require.NoError(t, svc.PurgeMessage(context.Background(), "m1", "direct"))

	reactions, err := svc.Reactions(context.Background(), "m1", "direct")
	require.NoError(t, err)
	assert.Empty(t, reactions)
	receipts, err := svc.Receipts(context.Background(), "m1", "direct")
	require.NoError(t, err)
	assert.Empty(t, receipts)
}
