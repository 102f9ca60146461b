package middleware

import (
	"fmt"

	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/AzielCF/tg-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Recovery turns a handler panic into a 500 response instead of dropping
// the connection. Typed application errors keep their own status code.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			err := recover()
			if err != nil {
				var res utils.ResponseData
				res.Status = 500
				res.Code = "INTERNAL_SERVER_ERROR"
				res.Message = fmt.Sprintf("%v", err)

				logrus.Errorf("Panic recovered in middleware: %v", err)

				errTyped, isTyped := err.(pkgError.GenericError)
				if isTyped {
					res.Status = errTyped.StatusCode()
					res.Code = errTyped.ErrCode()
					res.Message = errTyped.Error()
				}

				_ = ctx.Status(res.Status).JSON(res)
			}
		}()

		return ctx.Next()
	}
}
