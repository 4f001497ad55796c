package handler

import (
	"github.com/deppfellow/membership/internal/lib/flash"
	"github.com/deppfellow/membership/internal/server"
	"github.com/labstack/echo/v4"
)

type MessagesHandler struct {
	Handler
}

func NewMessagesHandler(s *server.Server) *MessagesHandler {
	return &MessagesHandler{Handler: NewHandler(s)}
}

type MessagesResponse struct {
	Messages []flash.Message `json:"messages"`
}

// Pop returns and clears the caller's pending flash messages.
func (h *MessagesHandler) Pop(c echo.Context, _ *EmptyRequest) (*MessagesResponse, error) {
	resp := &MessagesResponse{Messages: []flash.Message{}}

	id, ok := existingFlashID(c)
	if !ok {
		return resp, nil
	}

	messages, err := h.flash.Pop(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if messages != nil {
		resp.Messages = messages
	}
	return resp, nil
}
