package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/internal/storage"
)

type sessionData struct {
	CSRFToken string `json:"csrf_token,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

func newSessionStore(t *testing.T) *storage.SessionStore[sessionData] {
	t.Helper()
	return storage.NewSessionStore[sessionData](newTestDB(t))
}

func newSession(t *testing.T, ttl time.Duration) session.Session[sessionData] {
	t.Helper()

	sess, err := session.New[sessionData](session.NewSessionParams{
		IP:        "192.0.2.1",
		UserAgent: "test-agent",
	}, ttl)
	require.NoError(t, err)
	return sess
}

func TestSessionSaveAndLoad(t *testing.T) {
	store := newSessionStore(t)
	ctx := context.Background()

	sess := newSession(t, time.Hour)
	sess.SetData(sessionData{CSRFToken: "token-123", Theme: "dark"})

	require.NoError(t, store.Save(ctx, &sess))

	byID, err := store.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, byID.ID)
	assert.Equal(t, sess.Token, byID.Token)
	assert.Equal(t, uuid.Nil, byID.UserID)
	assert.Equal(t, "192.0.2.1", byID.IP)
	assert.Equal(t, "test-agent", byID.UserAgent)
	assert.Equal(t, sessionData{CSRFToken: "token-123", Theme: "dark"}, byID.Data)
	assert.WithinDuration(t, sess.ExpiresAt, byID.ExpiresAt, time.Millisecond)
	assert.False(t, byID.IsModified())

	byToken, err := store.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, byToken.ID)
}

func TestSessionAuthenticatedRoundTrip(t *testing.T) {
	store := newSessionStore(t)
	ctx := context.Background()

	userID := uuid.New()
	sess := newSession(t, time.Hour)
	require.NoError(t, sess.Authenticate(userID, sessionData{CSRFToken: "post-login"}))

	require.NoError(t, store.Save(ctx, &sess))

	loaded, err := store.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, loaded.UserID)
	assert.True(t, loaded.IsAuthenticated())
	assert.Equal(t, "post-login", loaded.Data.CSRFToken)
}

func TestSessionTokenRotationReplacesRow(t *testing.T) {
	store := newSessionStore(t)
	ctx := context.Background()

	sess := newSession(t, time.Hour)
	require.NoError(t, store.Save(ctx, &sess))
	oldToken := sess.Token

	require.NoError(t, sess.Authenticate(uuid.New()))
	require.NotEqual(t, oldToken, sess.Token)
	require.NoError(t, store.Save(ctx, &sess))

	_, err := store.GetByToken(ctx, oldToken)
	assert.ErrorIs(t, err, session.ErrNotFound)

	loaded, err := store.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
}

func TestSessionGetMissing(t *testing.T) {
	store := newSessionStore(t)
	ctx := context.Background()

	_, err := store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = store.GetByToken(ctx, "no-such-token")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionDelete(t *testing.T) {
	store := newSessionStore(t)
	ctx := context.Background()

	sess := newSession(t, time.Hour)
	require.NoError(t, store.Save(ctx, &sess))

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestDeleteExpiredKeepsLiveSessions(t *testing.T) {
	store := newSessionStore(t)
	ctx := context.Background()

	expired := newSession(t, -time.Minute)
	live := newSession(t, time.Hour)
	require.NoError(t, store.Save(ctx, &expired))
	require.NoError(t, store.Save(ctx, &live))

	deleted, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = store.GetByID(ctx, expired.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	survivor, err := store.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.ID, survivor.ID)
}

func TestSessionManagerOverSQLiteStore(t *testing.T) {
	store := newSessionStore(t)
	manager := session.NewManager[sessionData](store, session.WithTTL(time.Hour))
	ctx := context.Background()

	sess := newSession(t, time.Hour)
	require.NoError(t, manager.Save(ctx, &sess))
	assert.False(t, sess.IsModified())

	loaded, err := manager.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
}
