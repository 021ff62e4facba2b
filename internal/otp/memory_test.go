package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_, err := store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "a@example.com", &Entry{Code: "123456"}, time.Minute))

	entry, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", entry.Code)
	assert.Zero(t, entry.Attempts)

	entry.Attempts = 2
	entry.Verified = true
	require.NoError(t, store.Update(ctx, "a@example.com", entry))

	updated, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Attempts)
	assert.True(t, updated.Verified)

	require.NoError(t, store.Delete(ctx, "a@example.com"))
	_, err = store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", &Entry{Code: "123456"}, 30*time.Millisecond))
	time.Sleep(60 * time.Millisecond)

	_, err := store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Update(ctx, "a@example.com", &Entry{Code: "123456"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", &Entry{Code: "123456"}, time.Minute))

	first, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	first.Attempts = 99

	// Mutating a read result does not write through.
	second, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Zero(t, second.Attempts)
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@example.com", &Entry{Code: "111111", Attempts: 2}, time.Minute))
	require.NoError(t, store.Put(ctx, "a@example.com", &Entry{Code: "222222"}, time.Minute))

	entry, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", entry.Code)
	assert.Zero(t, entry.Attempts)
}
