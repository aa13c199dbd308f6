// Package response shapes the JSON bodies of the ops endpoints.
package response

import (
	"net/http"

	deliverycontext "listingmanager/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "TASK_RUNNING"
	Message string `json:"message"`           // Human readable message
	Details any    `json:"details,omitempty"` // Additional context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: &MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode, message string, details any) error {
	if statusCode >= 500 {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
	})
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode, message string, details any) error {
	return Error(c, http.StatusNotFound, errorCode, message, details)
}

// Conflict returns a 409 error
func Conflict(c echo.Context, errorCode, message string, details any) error {
	return Error(c, http.StatusConflict, errorCode, message, details)
}

// ServiceUnavailable returns a 503 error
func ServiceUnavailable(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusServiceUnavailable, errorCode, message, nil)
}
