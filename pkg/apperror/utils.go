package apperror

import (
	"texture-matcher/config"
	"texture-matcher/pkg/apperror/status"
	"texture-matcher/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message string) error {
	logger.ForModule(module).WithFields(map[string]interface{}{
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
		"request_id":    c.Get(fiber.HeaderXRequestID),
		"body":          string(c.Body()),
	}).Warn("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
	})
}

// BadRequest writes a 400 with the given code.
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, Code(code), message)
}

// BadGateway reports an upstream model failure.
func BadGateway(module config.Module, c fiber.Ctx, code status.ErrorCode, err error) error {
	return WriteError(module, c, fiber.StatusBadGateway, Code(code), err.Error())
}

// GatewayTimeout reports an upstream model call that ran out of time.
func GatewayTimeout(module config.Module, c fiber.Ctx, code status.ErrorCode, err error) error {
	return WriteError(module, c, fiber.StatusGatewayTimeout, Code(code), err.Error())
}

// InternalError writes a 500 with the generic internal code.
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, Code(status.ErrorCodeInternal), err.Error())
}

// Success writes a standardized JSON success response
func Success(module config.Module, c fiber.Ctx, response FiberSuccessMessage) error {
	if response.Code == 0 {
		response.Code = status.OK
	}
	if response.TrackingID == "" {
		response.TrackingID = c.Get(fiber.HeaderXRequestID)
	}
	return c.Status(fiber.StatusOK).JSON(response)
}
