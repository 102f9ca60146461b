package rest

import (
	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/AzielCF/tg-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Exclusion struct {
	Service domainExclusion.IExclusionUsecase
}

func InitRestExclusion(app fiber.Router, service domainExclusion.IExclusionUsecase) Exclusion {
	handler := Exclusion{Service: service}

	group := app.Group("/exclusions")
	group.Get("/", handler.GetConfig)
	group.Post("/chats", handler.AddChat)
	group.Delete("/chats", handler.ClearChats)
	group.Delete("/chats/:id", handler.RemoveChat)
	group.Post("/usernames", handler.AddUsername)
	group.Delete("/usernames", handler.ClearUsernames)
	group.Delete("/usernames/:username", handler.RemoveUsername)

	return handler
}

func (h *Exclusion) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.Service.GetConfig(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Exclusion config retrieved",
		Results: cfg,
	})
}

func (h *Exclusion) AddChat(c *fiber.Ctx) error {
	var request domainExclusion.AddChatRequest
	if err := c.BodyParser(&request); err != nil {
		return errorResponse(c, pkgError.ValidationError("invalid request body"))
	}

	result, err := h.Service.AddExcludedChat(c.UserContext(), request)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: result.Message,
		Results: result,
	})
}

func (h *Exclusion) RemoveChat(c *fiber.Ctx) error {
	result, err := h.Service.RemoveExcludedChat(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: result.Message,
		Results: result,
	})
}

func (h *Exclusion) ClearChats(c *fiber.Ctx) error {
	result, err := h.Service.ClearExcludedChats(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: result.Message,
		Results: result,
	})
}

func (h *Exclusion) AddUsername(c *fiber.Ctx) error {
	var request domainExclusion.AddUsernameRequest
	if err := c.BodyParser(&request); err != nil {
		return errorResponse(c, pkgError.ValidationError("invalid request body"))
	}

	result, err := h.Service.AddExcludedUsername(c.UserContext(), request)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: result.Message,
		Results: result,
	})
}

func (h *Exclusion) RemoveUsername(c *fiber.Ctx) error {
	result, err := h.Service.RemoveExcludedUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: result.Message,
		Results: result,
	})
}

func (h *Exclusion) ClearUsernames(c *fiber.Ctx) error {
	result, err := h.Service.ClearExcludedUsernames(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: result.Message,
		Results: result,
	})
}
