package rest

import (
	"github.com/AzielCF/tg-relay/core/config"
	"github.com/AzielCF/tg-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type App struct{}

// InitRestApp wires the small status surface used for operational checks.
func InitRestApp(app fiber.Router) App {
	handler := App{}

	group := app.Group("/app")
	group.Get("/status", handler.Status)

	return handler
}

func (h *App) Status(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Relay status retrieved",
		Results: config.GetAllSettings(),
	})
}
