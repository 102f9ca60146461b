package rest

import (
	"encoding/json"

	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	domainRelay "github.com/AzielCF/tg-relay/domains/relay"
	"github.com/AzielCF/tg-relay/infrastructure/telegram"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Webhook is the platform-facing endpoint. It always answers HTTP 200
// with the legacy {ok, ...} envelope; filtering decisions are never
// surfaced as HTTP errors.
type Webhook struct {
	Relay      domainRelay.IRelayUsecase
	Connection domainConnection.IConnectionUsecase
}

func InitRestWebhook(app fiber.Router, relayService domainRelay.IRelayUsecase, connectionService domainConnection.IConnectionUsecase) Webhook {
	handler := Webhook{
		Relay:      relayService,
		Connection: connectionService,
	}

	app.Post("/webhooks/telegram", handler.Handle)

	return handler
}

func (h *Webhook) Handle(c *fiber.Ctx) error {
	var update telegram.Update
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		// Malformed input is recovered locally as an inert acknowledgement.
		logrus.WithError(err).Warn("[WEBHOOK] Malformed update payload; acknowledging without action")
		return c.JSON(fiber.Map{"ok": true, "skipped": true})
	}

	if status, ok := telegram.ConnectionUpdate(&update); ok {
		if err := h.Connection.HandleStatusUpdate(c.UserContext(), status); err != nil {
			logrus.WithError(err).Error("[WEBHOOK] Failed to persist connection status")
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"ok": false, "error": err.Error()})
		}
		return c.JSON(fiber.Map{"ok": true, "status": "connection_updated"})
	}

	msg, ok := telegram.NormalizeMessage(&update)
	if !ok {
		logrus.Debug("[WEBHOOK] Update carries nothing to forward")
		return c.JSON(fiber.Map{"ok": true, "skipped": true})
	}

	decision, result := h.Relay.Relay(c.UserContext(), msg)

	switch decision.Verdict {
	case domainRelay.VerdictReject:
		return c.JSON(fiber.Map{"ok": true, "message": "Not authorized"})
	case domainRelay.VerdictSkip:
		return c.JSON(fiber.Map{"ok": true, "skipped": true, "reason": decision.Reason})
	}

	if !result.Success {
		// The single condition worth alerting on; still HTTP 200 so the
		// platform does not re-deliver.
		return c.JSON(fiber.Map{"ok": false, "error": result.Error})
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"message":    "Forwarded successfully",
		"message_id": result.MessageID,
	})
}
