package usecase

import (
	"context"

	"github.com/AzielCF/tg-relay/core/config"
	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	domainRelay "github.com/AzielCF/tg-relay/domains/relay"
	"github.com/sirupsen/logrus"
)

type serviceRelay struct {
	targetChatID   string
	allowedSenders map[string]struct{}
	auditLog       bool

	exclusionStore  domainExclusion.IExclusionStore
	connectionStore domainConnection.IConnectionStore
	forwarder       domainRelay.IForwarder
}

// NewRelayService wires the admission chain and the forwarder. The allow
// list and the target chat come from startup config and never change for
// the process lifetime.
func NewRelayService(
	cfg config.RelayConfig,
	exclusionStore domainExclusion.IExclusionStore,
	connectionStore domainConnection.IConnectionStore,
	forwarder domainRelay.IForwarder,
) domainRelay.IRelayUsecase {
	allowed := make(map[string]struct{}, len(cfg.AllowedSenderIDs))
	for _, id := range cfg.AllowedSenderIDs {
		allowed[id] = struct{}{}
	}
	return &serviceRelay{
		targetChatID:    cfg.TargetChatID,
		allowedSenders:  allowed,
		auditLog:        cfg.AuditLog,
		exclusionStore:  exclusionStore,
		connectionStore: connectionStore,
		forwarder:       forwarder,
	}
}

// Admit runs the ordered filter chain. First matching rule wins. The
// allow list is a security boundary and always runs first; the remaining
// rules are routing preferences whose relative order only changes which
// reason gets logged.
func (service *serviceRelay) Admit(ctx context.Context, msg domainRelay.InboundMessage) domainRelay.Decision {
	if len(service.allowedSenders) > 0 {
		if _, ok := service.allowedSenders[msg.SenderID]; !ok {
			return domainRelay.Reject("not authorized")
		}
	}

	if msg.SenderUsername != "" && service.isUsernameExcluded(ctx, msg.SenderUsername) {
		return domainRelay.Skip("user excluded")
	}

	if msg.ChatID != "" && service.isChatPaused(ctx, msg.ChatID) {
		return domainRelay.Skip("bot paused for this chat")
	}

	if msg.ChatID != "" && service.isChatExcluded(ctx, msg.ChatID) {
		return domainRelay.Skip("chat excluded from forwarding")
	}

	return domainRelay.Accept()
}

// Relay admits the message and, when accepted, issues the single forward
// attempt. Rejected and skipped messages produce a zero ForwardResult.
func (service *serviceRelay) Relay(ctx context.Context, msg domainRelay.InboundMessage) (domainRelay.Decision, domainRelay.ForwardResult) {
	decision := service.Admit(ctx, msg)

	if service.auditLog {
		logrus.WithFields(logrus.Fields{
			"verdict":    decision.Verdict,
			"reason":     decision.Reason,
			"sender_id":  msg.SenderID,
			"username":   msg.SenderUsername,
			"chat_id":    msg.ChatID,
			"media_type": msg.MediaType,
		}).Info("[RELAY] Admission decision")
	}

	if !decision.Forwardable() {
		return decision, domainRelay.ForwardResult{}
	}

	result := service.forwarder.Forward(ctx, service.targetChatID, msg)

	if service.auditLog {
		logrus.WithFields(logrus.Fields{
			"success":    result.Success,
			"message_id": result.MessageID,
			"error":      result.Error,
		}).Info("[RELAY] Forward result")
	}

	return decision, result
}

// Store reads fail safe: an unreadable store is treated as "no exclusions
// configured", but the failure is logged so it cannot be confused with a
// legitimately empty list.
func (service *serviceRelay) isUsernameExcluded(ctx context.Context, username string) bool {
	excluded, err := service.exclusionStore.IsUsernameExcluded(ctx, username)
	if err != nil {
		logrus.WithError(err).Error("[RELAY] Exclusion store read failed; treating username as not excluded")
		return false
	}
	return excluded
}

func (service *serviceRelay) isChatExcluded(ctx context.Context, chatID string) bool {
	excluded, err := service.exclusionStore.IsChatExcluded(ctx, chatID)
	if err != nil {
		logrus.WithError(err).Error("[RELAY] Exclusion store read failed; treating chat as not excluded")
		return false
	}
	return excluded
}

func (service *serviceRelay) isChatPaused(ctx context.Context, chatID string) bool {
	paused, err := service.connectionStore.IsChatPaused(ctx, chatID)
	if err != nil {
		logrus.WithError(err).Error("[RELAY] Pause store read failed; treating chat as active")
		return false
	}
	return paused
}
