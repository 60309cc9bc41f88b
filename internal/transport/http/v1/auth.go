package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HeaderAPIKey is the header carrying the shared API credential.
const HeaderAPIKey = "X-API-Key"

// requireAPIKey enforces the credential on operations the policy engine
// marks as protected. The failure response never reveals which part of the
// credential was wrong.
func (h *Handler) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		required, err := h.policy.RequiresKey(c.Request().Context(), c.Request().Method, c.Path())
		if err != nil {
			// RequiresKey fails closed, so required is already true here.
			h.logs.Error("auth policy evaluation failed", zap.Error(err))
		}
		if !required {
			return next(c)
		}

		if !validKey(c.Request().Header.Get(HeaderAPIKey), h.config.APIKey) {
			return errorResponse(c, http.StatusUnauthorized, map[string]interface{}{"detail": "Invalid API Key"})
		}
		return next(c)
	}
}

// validKey compares the supplied key against the configured one in constant
// time. An unconfigured key rejects all protected operations.
func validKey(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
