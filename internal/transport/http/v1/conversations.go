package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/convoapp/convo/internal/domain"
)

// CreateConversation creates a new conversation.
// POST /conversations
func (h *Handler) CreateConversation(c echo.Context) error {
	var req domain.ConversationCreateRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, map[string]interface{}{"detail": "Invalid request body"})
	}

	conversation, err := h.service.CreateConversation(c.Request().Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return successResponse(c, http.StatusCreated, "Conversation created successfully", conversation)
}

// GetConversation fetches a conversation by id.
// GET /conversations/:id
func (h *Handler) GetConversation(c echo.Context) error {
	id, verr := uuidParam(c, "id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}

	conversation, err := h.service.GetConversation(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return successResponse(c, http.StatusOK, "Conversation retrieved successfully", conversation)
}

// DeleteConversation deletes a conversation and all its messages.
// DELETE /conversations/:id
func (h *Handler) DeleteConversation(c echo.Context) error {
	id, verr := uuidParam(c, "id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}

	if err := h.service.DeleteConversation(c.Request().Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return successResponse(c, http.StatusOK, "Conversation deleted successfully", nil)
}
