package usecase

import (
	"context"

	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	"github.com/sirupsen/logrus"
)

type serviceConnection struct {
	store domainConnection.IConnectionStore
}

// NewConnectionService applies business-connection control events to the
// pause state. ACTIVE is the default (no stored record); PAUSED is the
// presence of one.
func NewConnectionService(store domainConnection.IConnectionStore) domainConnection.IConnectionUsecase {
	return &serviceConnection{store: store}
}

func (service *serviceConnection) HandleStatusUpdate(ctx context.Context, update domainConnection.StatusUpdate) error {
	fields := logrus.Fields{
		"connection_id": update.ConnectionID,
		"user_chat_id":  update.UserChatID,
		"user_name":     update.UserName,
		"is_enabled":    update.IsEnabled,
	}

	hasChat := update.UserChatID != "" && update.UserChatID != "0"

	if hasChat {
		if update.IsEnabled {
			if err := service.store.ResumeChat(ctx, update.UserChatID); err != nil {
				return err
			}
			logrus.WithFields(fields).Info("[PAUSE] Chat resumed, forwarding enabled")
		} else {
			if err := service.store.PauseChat(ctx, update.UserChatID, update.UserName); err != nil {
				return err
			}
			logrus.WithFields(fields).Info("[PAUSE] Chat paused, forwarding suspended")
		}
	} else {
		logrus.WithFields(fields).Warn("[PAUSE] Control event without user_chat_id; pause state unchanged")
	}

	if update.ConnectionID != "" {
		if err := service.store.UpsertConnection(ctx, domainConnection.BusinessConnection{
			ConnectionID: update.ConnectionID,
			UserChatID:   update.UserChatID,
			UserName:     update.UserName,
			IsEnabled:    update.IsEnabled,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (service *serviceConnection) IsChatPaused(ctx context.Context, chatID string) (bool, error) {
	return service.store.IsChatPaused(ctx, chatID)
}

func (service *serviceConnection) ListPausedChats(ctx context.Context) ([]domainConnection.PausedChat, error) {
	return service.store.ListPausedChats(ctx)
}

func (service *serviceConnection) ListConnections(ctx context.Context) ([]domainConnection.BusinessConnection, error) {
	return service.store.ListConnections(ctx)
}
