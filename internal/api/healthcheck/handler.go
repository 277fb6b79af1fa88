package healthcheck

import (
	"texture-matcher/config"
	"texture-matcher/internal/core/backend"
	"texture-matcher/pkg/apperror"
	"texture-matcher/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

func ApiHealthCheck(c fiber.Ctx) error {
	return c.SendString("ok")
}

// ModelHealthCheck reports which backend and model the server matches with.
func ModelHealthCheck(info backend.Info) fiber.Handler {
	return func(c fiber.Ctx) error {
		return apperror.Success(config.ModuleHealth, c, apperror.FiberSuccessMessage{
			Code:    status.OK,
			Message: "model configured",
			Data:    info,
		})
	}
}
