package usecase

import (
	"context"
	"testing"

	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection_DisablePausesChat(t *testing.T) {
	ctx := context.Background()
	store := newFakeConnectionStore()
	service := NewConnectionService(store)

	err := service.HandleStatusUpdate(ctx, domainConnection.StatusUpdate{
		ConnectionID: "conn-1",
		UserChatID:   "42",
		UserName:     "alice",
		IsEnabled:    false,
	})
	require.NoError(t, err)

	paused, err := service.IsChatPaused(ctx, "42")
	require.NoError(t, err)
	assert.True(t, paused)

	conn, err := store.GetConnection(ctx, "conn-1")
	require.NoError(t, err)
	assert.False(t, conn.IsEnabled)
	assert.Equal(t, "42", conn.UserChatID)
}

func TestConnection_EnableResumesChat(t *testing.T) {
	ctx := context.Background()
	store := newFakeConnectionStore()
	service := NewConnectionService(store)

	require.NoError(t, service.HandleStatusUpdate(ctx, domainConnection.StatusUpdate{
		ConnectionID: "conn-1", UserChatID: "42", IsEnabled: false,
	}))
	require.NoError(t, service.HandleStatusUpdate(ctx, domainConnection.StatusUpdate{
		ConnectionID: "conn-1", UserChatID: "42", IsEnabled: true,
	}))

	paused, err := service.IsChatPaused(ctx, "42")
	require.NoError(t, err)
	assert.False(t, paused)
}

func TestConnection_MissingChatIDLeavesPauseStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := newFakeConnectionStore()
	service := NewConnectionService(store)

	for _, chatID := range []string{"", "0"} {
		err := service.HandleStatusUpdate(ctx, domainConnection.StatusUpdate{
			ConnectionID: "conn-1",
			UserChatID:   chatID,
			IsEnabled:    false,
		})
		require.NoError(t, err)
	}

	chats, err := service.ListPausedChats(ctx)
	require.NoError(t, err)
	assert.Empty(t, chats)

	// The connection record itself is still kept.
	conns, err := service.ListConnections(ctx)
	require.NoError(t, err)
	assert.Len(t, conns, 1)
}

func TestConnection_NoConnectionIDSkipsUpsert(t *testing.T) {
	ctx := context.Background()
	store := newFakeConnectionStore()
	service := NewConnectionService(store)

	err := service.HandleStatusUpdate(ctx, domainConnection.StatusUpdate{
		UserChatID: "42",
		IsEnabled:  false,
	})
	require.NoError(t, err)

	paused, err := service.IsChatPaused(ctx, "42")
	require.NoError(t, err)
	assert.True(t, paused)

	conns, err := service.ListConnections(ctx)
	require.NoError(t, err)
	assert.Empty(t, conns)
}
