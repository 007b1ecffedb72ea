package handler

import (
	"net/http"
	"strconv"

	"github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chat service.ChatService
}

func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatMessageRequest struct {
	ConversationID *uint64 `json:"conversation_id"`
	Message        string  `json:"message" validate:"required,max=4000"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	reply, err := h.chat.SendMessage(c.Request().Context(), middleware.UserID(c), middleware.Role(c), req.ConversationID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reply)
}

func (h *ChatHandler) Conversations(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	conversations, err := h.chat.Conversations(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conversations": conversations})
}

func (h *ChatHandler) Conversation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid conversation id"))
	}
	conv, messages, err := h.chat.Conversation(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversation": conv,
		"messages":     messages,
	})
}

func (h *ChatHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid conversation id"))
	}
	if err := h.chat.Delete(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "conversation deleted"})
}

type chatFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,oneof=helpful not_helpful inappropriate"`
}

func (h *ChatHandler) Feedback(c echo.Context) error {
	messageID, err := strconv.ParseUint(c.Param("message_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid message id"))
	}
	var req chatFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	if err := h.chat.Feedback(c.Request().Context(), middleware.UserID(c), messageID, req.Feedback); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "feedback recorded"})
}

func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.chat.Health(c.Request().Context()))
}
