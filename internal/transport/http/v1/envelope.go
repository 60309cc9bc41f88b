package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/convoapp/convo/internal/domain"
	"github.com/convoapp/convo/internal/logging"
)

// internalErrorDetail is the opaque detail returned on unexpected errors.
// Internal error text never reaches the wire.
const internalErrorDetail = "An unexpected error occurred. Please try again later."

// Response is the uniform wire envelope. Data is null on deletions and
// failures; Errors is present only on failures.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors,omitempty"`
}

func successResponse(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func errorResponse(c echo.Context, code int, errs interface{}) error {
	return c.JSON(code, Response{
		Code:    code,
		Message: statusMessage(code),
		Errors:  errs,
	})
}

// statusMessage maps an HTTP status to its fixed envelope message.
func statusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Validation error"
	case http.StatusUnauthorized:
		return "Authentication failed"
	case http.StatusForbidden:
		return "Permission denied"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusMethodNotAllowed:
		return "Method not allowed"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return "An error occurred"
	}
}

// handleError maps service error variants to wire envelopes. Anything
// outside the known taxonomy is logged with full detail and surfaced as an
// opaque 500.
func (h *Handler) handleError(c echo.Context, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, map[string]interface{}{"detail": "Not found."})
	default:
		h.logs.Error("unexpected error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, map[string]interface{}{"detail": internalErrorDetail})
	}
}

// ErrorHandler returns the echo error handler that normalizes anything the
// handlers did not catch (unknown routes, method mismatches, panics turned
// into errors by Recover) to the wire envelope. This is the only place bare
// errors are converted to wire errors.
func ErrorHandler(logs *logging.Recorder) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
		}

		var errs interface{}
		if code == http.StatusInternalServerError {
			logs.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
			errs = map[string]interface{}{"detail": internalErrorDetail}
		}

		if err := errorResponse(c, code, errs); err != nil {
			logs.Error("failed to write error response", zap.Error(err))
		}
	}
}
