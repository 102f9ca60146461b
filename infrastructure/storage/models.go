package storage

import "time"

// --- Persistence Models ---

type excludedChatModel struct {
	ChatID    string    `gorm:"primaryKey;column:chat_id"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type;default:'unknown'"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (excludedChatModel) TableName() string { return "excluded_chats" }

type excludedUsernameModel struct {
	// Normalized lowercase form; membership tests are case-insensitive.
	UsernameLower string    `gorm:"primaryKey;column:username_lower"`
	Username      string    `gorm:"column:username;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (excludedUsernameModel) TableName() string { return "excluded_usernames" }

type pausedChatModel struct {
	ChatID   string    `gorm:"primaryKey;column:chat_id"`
	UserName string    `gorm:"column:user_name"`
	PausedAt time.Time `gorm:"column:paused_at;not null"`
}

func (pausedChatModel) TableName() string { return "paused_chats" }

type businessConnectionModel struct {
	ConnectionID string    `gorm:"primaryKey;column:connection_id"`
	UserChatID   string    `gorm:"column:user_chat_id;index"`
	UserName     string    `gorm:"column:user_name"`
	IsEnabled    bool      `gorm:"column:is_enabled;default:true"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (businessConnectionModel) TableName() string { return "business_connections" }
