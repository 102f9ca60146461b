package storage

import (
	"context"
	"errors"
	"time"

	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConnectionGormRepository persists paused chats and their
// business-connection twins.
type ConnectionGormRepository struct {
	db *gorm.DB
}

func NewConnectionGormRepository(db *gorm.DB) *ConnectionGormRepository {
	return &ConnectionGormRepository{db: db}
}

func (r *ConnectionGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&pausedChatModel{},
		&businessConnectionModel{},
	)
}

func (r *ConnectionGormRepository) IsChatPaused(ctx context.Context, chatID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&pausedChatModel{}).
		Where("chat_id = ?", chatID).Count(&count).Error
	return count > 0, err
}

func (r *ConnectionGormRepository) ListPausedChats(ctx context.Context) ([]domainConnection.PausedChat, error) {
	var models []pausedChatModel
	if err := r.db.WithContext(ctx).Order("paused_at asc").Find(&models).Error; err != nil {
		return nil, err
	}
	chats := make([]domainConnection.PausedChat, 0, len(models))
	for _, m := range models {
		chats = append(chats, domainConnection.PausedChat{
			ChatID:   m.ChatID,
			UserName: m.UserName,
			PausedAt: m.PausedAt,
		})
	}
	return chats, nil
}

func (r *ConnectionGormRepository) PauseChat(ctx context.Context, chatID, userName string) error {
	model := pausedChatModel{
		ChatID:   chatID,
		UserName: userName,
		PausedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_name", "paused_at"}),
		}).
		Create(&model).Error
}

func (r *ConnectionGormRepository) ResumeChat(ctx context.Context, chatID string) error {
	// Resuming a chat that was never paused is a no-op, not an error.
	return r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&pausedChatModel{}).Error
}

func (r *ConnectionGormRepository) UpsertConnection(ctx context.Context, conn domainConnection.BusinessConnection) error {
	model := businessConnectionModel{
		ConnectionID: conn.ConnectionID,
		UserChatID:   conn.UserChatID,
		UserName:     conn.UserName,
		IsEnabled:    conn.IsEnabled,
		UpdatedAt:    time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "connection_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_chat_id", "user_name", "is_enabled", "updated_at"}),
		}).
		Create(&model).Error
}

func (r *ConnectionGormRepository) GetConnection(ctx context.Context, connectionID string) (domainConnection.BusinessConnection, error) {
	var model businessConnectionModel
	err := r.db.WithContext(ctx).Where("connection_id = ?", connectionID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainConnection.BusinessConnection{}, pkgError.NotFoundError("business connection not found: " + connectionID)
	}
	if err != nil {
		return domainConnection.BusinessConnection{}, err
	}
	return domainConnection.BusinessConnection{
		ConnectionID: model.ConnectionID,
		UserChatID:   model.UserChatID,
		UserName:     model.UserName,
		IsEnabled:    model.IsEnabled,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}

func (r *ConnectionGormRepository) ListConnections(ctx context.Context) ([]domainConnection.BusinessConnection, error) {
	var models []businessConnectionModel
	if err := r.db.WithContext(ctx).Order("updated_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	conns := make([]domainConnection.BusinessConnection, 0, len(models))
	for _, m := range models {
		conns = append(conns, domainConnection.BusinessConnection{
			ConnectionID: m.ConnectionID,
			UserChatID:   m.UserChatID,
			UserName:     m.UserName,
			IsEnabled:    m.IsEnabled,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return conns, nil
}
