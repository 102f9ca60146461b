package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	"gorm.io/gorm"
)

// ExclusionGormRepository persists the exclusion lists. Every mutation
// runs in a transaction so concurrent admin edits cannot interleave; the
// WAL journal keeps concurrent pipeline reads on a consistent snapshot.
type ExclusionGormRepository struct {
	db *gorm.DB
}

func NewExclusionGormRepository(db *gorm.DB) *ExclusionGormRepository {
	return &ExclusionGormRepository{db: db}
}

func (r *ExclusionGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&excludedChatModel{},
		&excludedUsernameModel{},
	)
}

func (r *ExclusionGormRepository) GetExcludedChats(ctx context.Context) ([]domainExclusion.ExcludedChat, error) {
	var models []excludedChatModel
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}
	chats := make([]domainExclusion.ExcludedChat, 0, len(models))
	for _, m := range models {
		chats = append(chats, domainExclusion.ExcludedChat{
			ChatID:    m.ChatID,
			Name:      m.Name,
			Type:      m.Type,
			CreatedAt: m.CreatedAt,
		})
	}
	return chats, nil
}

func (r *ExclusionGormRepository) GetExcludedUsernames(ctx context.Context) ([]string, error) {
	var models []excludedUsernameModel
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Username)
	}
	return names, nil
}

func (r *ExclusionGormRepository) IsChatExcluded(ctx context.Context, chatID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&excludedChatModel{}).
		Where("chat_id = ?", chatID).Count(&count).Error
	return count > 0, err
}

func (r *ExclusionGormRepository) IsUsernameExcluded(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&excludedUsernameModel{}).
		Where("username_lower = ?", strings.ToLower(username)).Count(&count).Error
	return count > 0, err
}

// AddChat inserts the chat. Returns false without error when the id is
// already present.
func (r *ExclusionGormRepository) AddChat(ctx context.Context, chat domainExclusion.ExcludedChat) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing excludedChatModel
		err := tx.Where("chat_id = ?", chat.ChatID).First(&existing).Error
		if err == nil {
			return nil // duplicate, leave the store untouched
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&excludedChatModel{
			ChatID:    chat.ChatID,
			Name:      chat.Name,
			Type:      chat.Type,
			CreatedAt: time.Now().UTC(),
		}).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (r *ExclusionGormRepository) RemoveChat(ctx context.Context, chatID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&excludedChatModel{})
	return res.RowsAffected > 0, res.Error
}

func (r *ExclusionGormRepository) ClearChats(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&excludedChatModel{})
	return res.RowsAffected, res.Error
}

func (r *ExclusionGormRepository) AddUsername(ctx context.Context, username string) (bool, error) {
	added := false
	lower := strings.ToLower(username)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing excludedUsernameModel
		err := tx.Where("username_lower = ?", lower).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&excludedUsernameModel{
			UsernameLower: lower,
			Username:      username,
			CreatedAt:     time.Now().UTC(),
		}).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (r *ExclusionGormRepository) RemoveUsername(ctx context.Context, username string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("username_lower = ?", strings.ToLower(username)).
		Delete(&excludedUsernameModel{})
	return res.RowsAffected > 0, res.Error
}

func (r *ExclusionGormRepository) ClearUsernames(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&excludedUsernameModel{})
	return res.RowsAffected, res.Error
}
