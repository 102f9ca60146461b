package storage

import (
	"context"
	"path/filepath"
	"testing"

	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database under the test's temp dir
// with the same pragmas the production factory uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "relay.db") + "?_journal_mode=WAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestExclusionRepo(t *testing.T) *ExclusionGormRepository {
	t.Helper()
	repo := NewExclusionGormRepository(newTestDB(t))
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestExclusionRepo_ChatRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestExclusionRepo(t)

	added, err := repo.AddChat(ctx, domainExclusion.ExcludedChat{
		ChatID: "-1001234567890",
		Name:   "Ops Channel",
		Type:   domainExclusion.ChatTypeChannel,
	})
	require.NoError(t, err)
	assert.True(t, added)

	excluded, err := repo.IsChatExcluded(ctx, "-1001234567890")
	require.NoError(t, err)
	assert.True(t, excluded)

	chats, err := repo.GetExcludedChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "-1001234567890", chats[0].ChatID)
	assert.Equal(t, "Ops Channel", chats[0].Name)
	assert.Equal(t, domainExclusion.ChatTypeChannel, chats[0].Type)
	assert.False(t, chats[0].CreatedAt.IsZero())

	removed, err := repo.RemoveChat(ctx, "-1001234567890")
	require.NoError(t, err)
	assert.True(t, removed)

	excluded, err = repo.IsChatExcluded(ctx, "-1001234567890")
	require.NoError(t, err)
	assert.False(t, excluded)
}

func TestExclusionRepo_DuplicateChatLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newTestExclusionRepo(t)

	added, err := repo.AddChat(ctx, domainExclusion.ExcludedChat{ChatID: "42", Name: "First", Type: domainExclusion.ChatTypeIndividual})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddChat(ctx, domainExclusion.ExcludedChat{ChatID: "42", Name: "Second", Type: domainExclusion.ChatTypeGroup})
	require.NoError(t, err)
	assert.False(t, added)

	chats, err := repo.GetExcludedChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "First", chats[0].Name, "duplicate add must not overwrite the original record")
}

func TestExclusionRepo_RemoveMissingChat(t *testing.T) {
	repo := newTestExclusionRepo(t)

	removed, err := repo.RemoveChat(context.Background(), "999")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestExclusionRepo_ClearChats(t *testing.T) {
	ctx := context.Background()
	repo := newTestExclusionRepo(t)

	for _, id := range []string{"1", "2", "3"} {
		_, err := repo.AddChat(ctx, domainExclusion.ExcludedChat{ChatID: id, Type: domainExclusion.ChatTypeUnknown})
		require.NoError(t, err)
	}

	count, err := repo.ClearChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	chats, err := repo.GetExcludedChats(ctx)
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestExclusionRepo_UsernameCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := newTestExclusionRepo(t)

	added, err := repo.AddUsername(ctx, "SpamBot")
	require.NoError(t, err)
	assert.True(t, added)

	for _, probe := range []string{"spambot", "SPAMBOT", "SpamBot"} {
		excluded, err := repo.IsUsernameExcluded(ctx, probe)
		require.NoError(t, err)
		assert.True(t, excluded, "probe %q", probe)
	}

	// Same name in a different case is the same entry.
	added, err = repo.AddUsername(ctx, "spambot")
	require.NoError(t, err)
	assert.False(t, added)

	names, err := repo.GetExcludedUsernames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "SpamBot", names[0], "the original casing is what gets listed")

	removed, err := repo.RemoveUsername(ctx, "SPAMBOT")
	require.NoError(t, err)
	assert.True(t, removed)

	excluded, err := repo.IsUsernameExcluded(ctx, "spambot")
	require.NoError(t, err)
	assert.False(t, excluded)
}

func TestExclusionRepo_ClearUsernames(t *testing.T) {
	ctx := context.Background()
	repo := newTestExclusionRepo(t)

	_, err := repo.AddUsername(ctx, "alice")
	require.NoError(t, err)
	_, err = repo.AddUsername(ctx, "bob")
	require.NoError(t, err)

	count, err := repo.ClearUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.ClearUsernames(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
