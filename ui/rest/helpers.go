package rest

import (
	"errors"

	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/AzielCF/tg-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// errorResponse maps typed application errors onto the admin envelope;
// anything untyped is an internal error.
func errorResponse(c *fiber.Ctx, err error) error {
	var generic pkgError.GenericError
	if errors.As(err, &generic) {
		return c.Status(generic.StatusCode()).JSON(utils.ResponseData{
			Status:  generic.StatusCode(),
			Code:    generic.ErrCode(),
			Message: generic.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ResponseData{
		Status:  500,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: err.Error(),
	})
}
