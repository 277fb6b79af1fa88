package middleware

import (
	"runtime/debug"

	"texture-matcher/config"
	"texture-matcher/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Register installs request id, panic recovery and connection limiting, in that order.
func Register(app *fiber.App, concurrency int) {
	app.Use(requestIDMiddleware())
	app.Use(panicRecoveryMiddleware())
	if concurrency > 0 {
		app.Use(connectionLimiterMiddleware(NewConnectionLimiter(concurrency)))
	}
}

// ConnectionLimiter limits the number of in-flight requests
type ConnectionLimiter struct {
	limit    int
	waitlist chan struct{}
}

func NewConnectionLimiter(limit int) *ConnectionLimiter {
	return &ConnectionLimiter{
		limit:    limit,
		waitlist: make(chan struct{}, limit),
	}
}

func (cl *ConnectionLimiter) Acquire() bool {
	select {
	case cl.waitlist <- struct{}{}:
		return true
	default:
		return false
	}
}

func (cl *ConnectionLimiter) Release() {
	select {
	case <-cl.waitlist:
	default:
	}
}

func connectionLimiterMiddleware(limiter *ConnectionLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Acquire() {
			logger.ForModule(config.ModuleServer).WithField("limit", limiter.limit).Warn("connection limit reached")
			return c.Status(fiber.StatusServiceUnavailable).SendString("Server is at maximum capacity")
		}
		defer limiter.Release()
		return c.Next()
	}
}

// requestIDMiddleware keeps a caller-supplied X-Request-ID or mints one.
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request().Header.Set(fiber.HeaderXRequestID, id)
		}
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

func panicRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ForModule(config.ModuleServer).WithFields(map[string]interface{}{
					"panic":      r,
					"method":     c.Method(),
					"path":       c.Path(),
					"ip":         c.IP(),
					"request_id": c.Get(fiber.HeaderXRequestID),
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
			}
		}()
		return c.Next()
	}
}
