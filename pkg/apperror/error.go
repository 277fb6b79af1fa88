package apperror

import (
	"fmt"

	"texture-matcher/pkg/apperror/status"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// FiberSuccessMessage wraps a successful payload with the request's tracking id.
type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// Code renders an ErrorCode the way clients see it, e.g. "TM-1001".
func Code(code status.ErrorCode) string {
	return fmt.Sprintf("TM-%d", code)
}
