package storage

import (
	"context"
	"testing"

	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnectionRepo(t *testing.T) *ConnectionGormRepository {
	t.Helper()
	repo := NewConnectionGormRepository(newTestDB(t))
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestConnectionRepo_PauseResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestConnectionRepo(t)

	paused, err := repo.IsChatPaused(ctx, "42")
	require.NoError(t, err)
	assert.False(t, paused)

	require.NoError(t, repo.PauseChat(ctx, "42", "alice"))

	paused, err = repo.IsChatPaused(ctx, "42")
	require.NoError(t, err)
	assert.True(t, paused)

	chats, err := repo.ListPausedChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "42", chats[0].ChatID)
	assert.Equal(t, "alice", chats[0].UserName)

	require.NoError(t, repo.ResumeChat(ctx, "42"))

	paused, err = repo.IsChatPaused(ctx, "42")
	require.NoError(t, err)
	assert.False(t, paused)
}

func TestConnectionRepo_PauseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestConnectionRepo(t)

	require.NoError(t, repo.PauseChat(ctx, "42", "alice"))
	require.NoError(t, repo.PauseChat(ctx, "42", "alice renamed"))

	chats, err := repo.ListPausedChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "alice renamed", chats[0].UserName)
}

func TestConnectionRepo_ResumeNeverPausedIsNoop(t *testing.T) {
	repo := newTestConnectionRepo(t)
	require.NoError(t, repo.ResumeChat(context.Background(), "999"))
}

func TestConnectionRepo_UpsertConnection(t *testing.T) {
	ctx := context.Background()
	repo := newTestConnectionRepo(t)

	require.NoError(t, repo.UpsertConnection(ctx, domainConnection.BusinessConnection{
		ConnectionID: "conn-1",
		UserChatID:   "42",
		UserName:     "alice",
		IsEnabled:    true,
	}))

	conn, err := repo.GetConnection(ctx, "conn-1")
	require.NoError(t, err)
	assert.True(t, conn.IsEnabled)
	assert.Equal(t, "42", conn.UserChatID)

	// Same connection id flips state in place.
	require.NoError(t, repo.UpsertConnection(ctx, domainConnection.BusinessConnection{
		ConnectionID: "conn-1",
		UserChatID:   "42",
		UserName:     "alice",
		IsEnabled:    false,
	}))

	conn, err = repo.GetConnection(ctx, "conn-1")
	require.NoError(t, err)
	assert.False(t, conn.IsEnabled)

	conns, err := repo.ListConnections(ctx)
	require.NoError(t, err)
	assert.Len(t, conns, 1)
}

func TestConnectionRepo_GetConnectionNotFound(t *testing.T) {
	repo := newTestConnectionRepo(t)

	_, err := repo.GetConnection(context.Background(), "missing")
	require.Error(t, err)

	var notFound pkgError.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
