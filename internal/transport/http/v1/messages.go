package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/convoapp/convo/internal/domain"
	"github.com/convoapp/convo/internal/service"
)

// ListMessages retrieves a filtered, paginated message listing.
// GET /conversations/:id/messages?q=&role=&page=&page_size=
func (h *Handler) ListMessages(c echo.Context) error {
	id, verr := uuidParam(c, "id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}

	params := service.ParsePageParams(c.QueryParam("page"), c.QueryParam("page_size"))
	opts := service.MessageListOptions{
		Query: c.QueryParam("q"),
		Role:  c.QueryParam("role"),
		Page:  params,
	}

	page, err := h.service.ListMessages(c.Request().Context(), id, opts)
	if err != nil {
		return h.handleError(c, err)
	}
	page.Next, page.Previous = params.Links(c.Request().URL, page.Count)

	return successResponse(c, http.StatusOK, "Messages retrieved successfully", page)
}

// CreateMessage adds a message to a conversation. User messages trigger an
// assistant auto-reply.
// POST /conversations/:id/messages
func (h *Handler) CreateMessage(c echo.Context) error {
	id, verr := uuidParam(c, "id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}

	var req domain.MessageCreateRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, map[string]interface{}{"detail": "Invalid request body"})
	}

	message, err := h.service.CreateMessage(c.Request().Context(), id, req)
	if err != nil {
		return h.handleError(c, err)
	}

	return successResponse(c, http.StatusCreated, "Message created successfully", message)
}

// GetMessage fetches a message scoped to the conversation.
// GET /conversations/:id/messages/:message_id
func (h *Handler) GetMessage(c echo.Context) error {
	id, verr := uuidParam(c, "id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}
	messageID, verr := uuidParam(c, "message_id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}

	message, err := h.service.GetMessage(c.Request().Context(), id, messageID)
	if err != nil {
		return h.handleError(c, err)
	}

	return successResponse(c, http.StatusOK, "Message retrieved successfully", message)
}

// DeleteMessage removes a message scoped to the conversation.
// DELETE /conversations/:id/messages/:message_id
func (h *Handler) DeleteMessage(c echo.Context) error {
	id, verr := uuidParam(c, "id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}
	messageID, verr := uuidParam(c, "message_id")
	if verr != nil {
		return errorResponse(c, http.StatusBadRequest, verr.Fields)
	}

	if err := h.service.DeleteMessage(c.Request().Context(), id, messageID); err != nil {
		return h.handleError(c, err)
	}

	return successResponse(c, http.StatusOK, "Message deleted successfully", nil)
}
