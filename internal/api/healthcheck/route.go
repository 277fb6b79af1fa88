package healthcheck

import (
	"texture-matcher/internal/core/backend"

	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, info backend.Info) {
	grp := r.Group("/health")

	grp.Get("/api", ApiHealthCheck)
	grp.Get("/model", ModelHealthCheck(info))
}
