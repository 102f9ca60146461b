package rest

import (
	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	"github.com/AzielCF/tg-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Connection struct {
	Service domainConnection.IConnectionUsecase
}

func InitRestConnection(app fiber.Router, service domainConnection.IConnectionUsecase) Connection {
	handler := Connection{Service: service}

	group := app.Group("/connections")
	group.Get("/", handler.List)
	group.Get("/paused", handler.ListPaused)

	return handler
}

func (h *Connection) List(c *fiber.Ctx) error {
	records, err := h.Service.ListConnections(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Business connections retrieved",
		Results: records,
	})
}

func (h *Connection) ListPaused(c *fiber.Ctx) error {
	records, err := h.Service.ListPausedChats(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Paused chats retrieved",
		Results: records,
	})
}
