package connection

import (
	"context"
	"time"
)

// PausedChat marks a chat whose owner pressed STOP in Telegram Business.
// Presence of a record means the chat is paused.
type PausedChat struct {
	ChatID   string    `json:"chat_id"`
	UserName string    `json:"user_name"`
	PausedAt time.Time `json:"paused_at"`
}

// BusinessConnection is the finer-grained twin of PausedChat, keyed by the
// platform's connection identifier so future control events can be matched
// either way.
type BusinessConnection struct {
	ConnectionID string    `json:"connection_id"`
	UserChatID   string    `json:"user_chat_id"`
	UserName     string    `json:"user_name"`
	IsEnabled    bool      `json:"is_enabled"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StatusUpdate is a normalized business_connection control event.
type StatusUpdate struct {
	ConnectionID string
	UserChatID   string
	UserName     string
	IsEnabled    bool
}

type IConnectionStore interface {
	IsChatPaused(ctx context.Context, chatID string) (bool, error)
	ListPausedChats(ctx context.Context) ([]PausedChat, error)
	PauseChat(ctx context.Context, chatID, userName string) error
	ResumeChat(ctx context.Context, chatID string) error

	UpsertConnection(ctx context.Context, conn BusinessConnection) error
	GetConnection(ctx context.Context, connectionID string) (BusinessConnection, error)
	ListConnections(ctx context.Context) ([]BusinessConnection, error)
}

// IConnectionUsecase applies enable/disable control events. These bypass
// the admission chain entirely.
type IConnectionUsecase interface {
	HandleStatusUpdate(ctx context.Context, update StatusUpdate) error
	IsChatPaused(ctx context.Context, chatID string) (bool, error)
	ListPausedChats(ctx context.Context) ([]PausedChat, error)
	ListConnections(ctx context.Context) ([]BusinessConnection, error)
}
