package exclusion

import (
	"context"
	"time"
)

// Chat classification mirrors the platform's chat types collapsed to the
// three buckets the panel historically used.
const (
	ChatTypeChannel    = "channel"
	ChatTypeGroup      = "group"
	ChatTypeIndividual = "individual"
	ChatTypeUnknown    = "unknown"
)

// ExcludedChat is one durable entry suppressing forwarding for a chat.
type ExcludedChat struct {
	ChatID    string    `json:"chat_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Config is the full exclusion view the admission chain consumes. An empty
// AllowedSenderIDs slice means "allow all".
type Config struct {
	AllowedSenderIDs  []string       `json:"allowed_sender_ids"`
	ExcludedUsernames []string       `json:"excluded_usernames"`
	ExcludedChats     []ExcludedChat `json:"excluded_chats"`
}

// MutationResult reports an admin mutation. Duplicate adds and removes of
// missing entries come back as Success=false with a message, never an error.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AddChatRequest struct {
	ChatID string `json:"chat_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

type AddUsernameRequest struct {
	Username string `json:"username"`
}

// IExclusionStore is the read/write contract against the durable store.
// The admission chain only ever calls the read side.
type IExclusionStore interface {
	GetExcludedChats(ctx context.Context) ([]ExcludedChat, error)
	GetExcludedUsernames(ctx context.Context) ([]string, error)
	IsChatExcluded(ctx context.Context, chatID string) (bool, error)
	IsUsernameExcluded(ctx context.Context, username string) (bool, error)

	AddChat(ctx context.Context, chat ExcludedChat) (bool, error)
	RemoveChat(ctx context.Context, chatID string) (bool, error)
	ClearChats(ctx context.Context) (int64, error)
	AddUsername(ctx context.Context, username string) (bool, error)
	RemoveUsername(ctx context.Context, username string) (bool, error)
	ClearUsernames(ctx context.Context) (int64, error)
}

// IExclusionUsecase is the administrative collaborator surface.
type IExclusionUsecase interface {
	GetConfig(ctx context.Context) (Config, error)
	AddExcludedChat(ctx context.Context, req AddChatRequest) (MutationResult, error)
	RemoveExcludedChat(ctx context.Context, chatID string) (MutationResult, error)
	ClearExcludedChats(ctx context.Context) (MutationResult, error)
	AddExcludedUsername(ctx context.Context, req AddUsernameRequest) (MutationResult, error)
	RemoveExcludedUsername(ctx context.Context, username string) (MutationResult, error)
	ClearExcludedUsernames(ctx context.Context) (MutationResult, error)
}
