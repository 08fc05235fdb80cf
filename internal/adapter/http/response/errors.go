// Package response provides standardized HTTP response builders for the flight search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func writeError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, &ErrorDetail{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return writeError(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, CodeValidationError, message)
}

// Conflict writes a 409 Conflict response for a superseded calendar build.
func Conflict(c echo.Context) error {
	return writeError(c, http.StatusConflict, CodeSuperseded, MsgSuperseded)
}

// RateLimited writes a 429 Too Many Requests response.
func RateLimited(c echo.Context) error {
	return writeError(c, http.StatusTooManyRequests, CodeRateLimited, MsgRateLimited)
}

// BadGateway writes a 502 Bad Gateway response carrying the upstream message.
func BadGateway(c echo.Context, message string) error {
	if message == "" {
		message = MsgProviderError
	}
	return writeError(c, http.StatusBadGateway, CodeProviderError, message)
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout)
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return writeError(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError)
}
