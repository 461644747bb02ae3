package flagledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockedNoticeIsReadOnce(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())

	require.NoError(t, ledger.SetBlockedNotice(ctx, 42, "Your account deletion request was approved."))

	notice, ok, err := ledger.TakeBlockedNotice(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Your account deletion request was approved.", notice)

	// Second read finds nothing
	_, ok, err = ledger.TakeBlockedNotice(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPromptFiredPerSession(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())

	fired, err := ledger.PromptFired(ctx, 7, "session-a")
	require.NoError(t, err)
	assert.False(t, fired)

	require.NoError(t, ledger.MarkPromptFired(ctx, 7, "session-a", time.Hour))

	fired, err = ledger.PromptFired(ctx, 7, "session-a")
	require.NoError(t, err)
	assert.True(t, fired)

	// A different session for the same user is unaffected
	fired, err = ledger.PromptFired(ctx, 7, "session-b")
	require.NoError(t, err)
	assert.False(t, fired)

	// So is the same session for a different user
	fired, err = ledger.PromptFired(ctx, 8, "session-a")
	require.NoError(t, err)
	assert.False(t, fired)

	require.NoError(t, ledger.ClearPromptFired(ctx, 7, "session-a"))
	fired, err = ledger.PromptFired(ctx, 7, "session-a")
	require.NoError(t, err)
	assert.False(t, fired)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJustRegisteredFlag(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())

	ok, err := ledger.TakeJustRegistered(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ledger.SetJustRegistered(ctx, 1))

	ok, err = ledger.TakeJustRegistered(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.TakeJustRegistered(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
