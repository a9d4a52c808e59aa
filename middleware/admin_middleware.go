package middleware

import (
	apimodels "procurement-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRole() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
