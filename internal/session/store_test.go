package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	store, err := NewStore(db, ttl)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store, db
}

func TestStore_CreatesTableIfMissing(t *testing.T) {
	t.Parallel()

	_, db := newTestStore(t, time.Hour)
	assert.True(t, db.Migrator().HasTable(&Session{}))
}

func TestStore_CreateGetDestroy(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	assert.Equal(t, uint(42), sess.UserID)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	loaded, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.UserID, loaded.UserID)

	require.NoError(t, store.Destroy(ctx, sess.Token))

	gone, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Destroying an already-destroyed session is a no-op.
	require.NoError(t, store.Destroy(ctx, sess.Token))
}

func TestStore_GetUnknownToken(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Hour)

	sess, err := store.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, sess)

	sess, err = store.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_ExpiredSessionIsInvisibleAndReaped(t *testing.T) {
	t.Parallel()

	store, db := newTestStore(t, -time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, 7)
	require.NoError(t, err)

	// Expired on arrival: Get treats it as absent and removes the row.
	loaded, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	var count int64
	require.NoError(t, db.Model(&Session{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStore_Reap(t *testing.T) {
	t.Parallel()

	store, db := newTestStore(t, time.Hour)
	ctx := context.Background()

	live, err := store.Create(ctx, 1)
	require.NoError(t, err)

	expired := &Session{
		Token:     "expired-token",
		UserID:    2,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(expired).Error)

	n, err := store.Reap(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	remaining, err := store.Get(ctx, live.Token)
	require.NoError(t, err)
	assert.NotNil(t, remaining)
}
