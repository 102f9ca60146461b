package usecase

import (
	"context"
	"fmt"

	"github.com/AzielCF/tg-relay/core/config"
	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/AzielCF/tg-relay/validations"
	"github.com/sirupsen/logrus"
)

type serviceExclusion struct {
	store            domainExclusion.IExclusionStore
	allowedSenderIDs []string
}

// NewExclusionService exposes the administrative collaborator surface.
// The allow list is included read-only in the config view; only the
// exclusion lists are mutable at runtime.
func NewExclusionService(cfg config.RelayConfig, store domainExclusion.IExclusionStore) domainExclusion.IExclusionUsecase {
	return &serviceExclusion{
		store:            store,
		allowedSenderIDs: cfg.AllowedSenderIDs,
	}
}

func (service *serviceExclusion) GetConfig(ctx context.Context) (domainExclusion.Config, error) {
	chats, err := service.store.GetExcludedChats(ctx)
	if err != nil {
		return domainExclusion.Config{}, pkgError.StoreError("failed to read excluded chats: " + err.Error())
	}
	usernames, err := service.store.GetExcludedUsernames(ctx)
	if err != nil {
		return domainExclusion.Config{}, pkgError.StoreError("failed to read excluded usernames: " + err.Error())
	}
	return domainExclusion.Config{
		AllowedSenderIDs:  service.allowedSenderIDs,
		ExcludedUsernames: usernames,
		ExcludedChats:     chats,
	}, nil
}

func (service *serviceExclusion) AddExcludedChat(ctx context.Context, request domainExclusion.AddChatRequest) (domainExclusion.MutationResult, error) {
	if err := validations.ValidateAddExcludedChat(ctx, request); err != nil {
		return domainExclusion.MutationResult{}, err
	}

	chatType := request.Type
	if chatType == "" {
		chatType = domainExclusion.ChatTypeUnknown
	}

	added, err := service.store.AddChat(ctx, domainExclusion.ExcludedChat{
		ChatID: request.ChatID,
		Name:   request.Name,
		Type:   chatType,
	})
	if err != nil {
		return domainExclusion.MutationResult{}, pkgError.StoreError("failed to add excluded chat: " + err.Error())
	}
	if !added {
		return domainExclusion.MutationResult{
			Success: false,
			Message: fmt.Sprintf("Chat ID '%s' is already in the excluded list.", request.ChatID),
		}, nil
	}

	logrus.WithField("chat_id", request.ChatID).Info("[STORE] Chat added to exclusion list")
	return domainExclusion.MutationResult{
		Success: true,
		Message: fmt.Sprintf("Chat ID '%s' added successfully!", request.ChatID),
	}, nil
}

func (service *serviceExclusion) RemoveExcludedChat(ctx context.Context, chatID string) (domainExclusion.MutationResult, error) {
	if err := validations.ValidateChatID(ctx, chatID); err != nil {
		return domainExclusion.MutationResult{}, err
	}

	removed, err := service.store.RemoveChat(ctx, chatID)
	if err != nil {
		return domainExclusion.MutationResult{}, pkgError.StoreError("failed to remove excluded chat: " + err.Error())
	}
	if !removed {
		return domainExclusion.MutationResult{
			Success: false,
			Message: fmt.Sprintf("Chat ID '%s' is not in the excluded list.", chatID),
		}, nil
	}

	logrus.WithField("chat_id", chatID).Info("[STORE] Chat removed from exclusion list")
	return domainExclusion.MutationResult{
		Success: true,
		Message: fmt.Sprintf("Chat ID '%s' removed successfully!", chatID),
	}, nil
}

func (service *serviceExclusion) ClearExcludedChats(ctx context.Context) (domainExclusion.MutationResult, error) {
	count, err := service.store.ClearChats(ctx)
	if err != nil {
		return domainExclusion.MutationResult{}, pkgError.StoreError("failed to clear excluded chats: " + err.Error())
	}

	logrus.WithField("removed", count).Info("[STORE] Excluded chat list cleared")
	return domainExclusion.MutationResult{
		Success: true,
		Message: fmt.Sprintf("Excluded chat list cleared (%d removed).", count),
	}, nil
}

func (service *serviceExclusion) AddExcludedUsername(ctx context.Context, request domainExclusion.AddUsernameRequest) (domainExclusion.MutationResult, error) {
	if err := validations.ValidateAddExcludedUsername(ctx, request); err != nil {
		return domainExclusion.MutationResult{}, err
	}

	added, err := service.store.AddUsername(ctx, request.Username)
	if err != nil {
		return domainExclusion.MutationResult{}, pkgError.StoreError("failed to add excluded username: " + err.Error())
	}
	if !added {
		return domainExclusion.MutationResult{
			Success: false,
			Message: fmt.Sprintf("Username '%s' is already in the excluded list.", request.Username),
		}, nil
	}

	logrus.WithField("username", request.Username).Info("[STORE] Username added to exclusion list")
	return domainExclusion.MutationResult{
		Success: true,
		Message: fmt.Sprintf("Username '%s' added successfully!", request.Username),
	}, nil
}

func (service *serviceExclusion) RemoveExcludedUsername(ctx context.Context, username string) (domainExclusion.MutationResult, error) {
	if err := validations.ValidateUsername(ctx, username); err != nil {
		return domainExclusion.MutationResult{}, err
	}

	removed, err := service.store.RemoveUsername(ctx, username)
	if err != nil {
		return domainExclusion.MutationResult{}, pkgError.StoreError("failed to remove excluded username: " + err.Error())
	}
	if !removed {
		return domainExclusion.MutationResult{
			Success: false,
			Message: fmt.Sprintf("Username '%s' is not in the excluded list.", username),
		}, nil
	}

	logrus.WithField("username", username).Info("[STORE] Username removed from exclusion list")
	return domainExclusion.MutationResult{
		Success: true,
		Message: fmt.Sprintf("Username '%s' removed successfully!", username),
	}, nil
}

func (service *serviceExclusion) ClearExcludedUsernames(ctx context.Context) (domainExclusion.MutationResult, error) {
	count, err := service.store.ClearUsernames(ctx)
	if err != nil {
		return domainExclusion.MutationResult{}, pkgError.StoreError("failed to clear excluded usernames: " + err.Error())
	}

	logrus.WithField("removed", count).Info("[STORE] Excluded username list cleared")
	return domainExclusion.MutationResult{
		Success: true,
		Message: fmt.Sprintf("Excluded username list cleared (%d removed).", count),
	}, nil
}
