// Package v1 provides HTTP handlers for the conversation service.
package v1

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/convoapp/convo/config"
	"github.com/convoapp/convo/internal/domain"
	"github.com/convoapp/convo/internal/logging"
	"github.com/convoapp/convo/internal/service"
	"github.com/convoapp/convo/policy"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	policy  *policy.Engine
	config  *config.Config
	logs    *logging.Recorder
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, engine *policy.Engine, cfg *config.Config, logs *logging.Recorder) *Handler {
	if logs == nil {
		logs = logging.NewRecorder(nil)
	}
	return &Handler{
		service: svc,
		policy:  engine,
		config:  cfg,
		logs:    logs,
	}
}

// RegisterRoutes registers routes with the echo server. The auth middleware
// covers every route; the policy engine decides per operation whether the
// credential is required.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Use(h.requireAPIKey)

	e.POST("/conversations", h.CreateConversation)
	e.GET("/conversations/:id", h.GetConversation)
	e.DELETE("/conversations/:id", h.DeleteConversation)

	e.GET("/conversations/:id/messages", h.ListMessages)
	e.POST("/conversations/:id/messages", h.CreateMessage)
	e.GET("/conversations/:id/messages/:message_id", h.GetMessage)
	e.DELETE("/conversations/:id/messages/:message_id", h.DeleteMessage)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// uuidParam validates that a path parameter is a well-formed UUID. This runs
// before any store lookup, so malformed input never reaches persistence.
func uuidParam(c echo.Context, name string) (string, *domain.ValidationError) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", domain.NewValidationError(name, fmt.Sprintf("Invalid UUID format: '%s'", raw))
	}
	return raw, nil
}
