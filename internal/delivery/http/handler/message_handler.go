package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/usecase/message"
)

type MessageHandler struct {
	messageUseCase *message.MessageUseCase
}

func NewMessageHandler(messageUseCase *message.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

// Send handles POST /messages
// @Summary Send a message
// @Description Send a message to an accepted connection, opening the thread on first contact
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body message.SendRequest true "Message data"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req message.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindingError(err),
		})
		return
	}

	msg, err := h.messageUseCase.Send(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid message",
			})
		case domain.ErrNotConversationMember:
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "messaging requires an accepted connection",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to send message",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListConversations handles GET /messages/conversations
// @Summary List conversations
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {array} message.ConversationSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages/conversations [get]
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.messageUseCase.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list conversations",
		})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// ListMessages handles GET /messages/:conversation_id
// @Summary List messages in a conversation
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.Message
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages/{conversation_id} [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversation_id")

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	msgs, err := h.messageUseCase.ListMessages(c.Request.Context(), conversationID, userID, limit, offset)
	if err != nil {
		switch err {
		case domain.ErrConversationNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "conversation not found",
			})
		case domain.ErrNotConversationMember:
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "not a member of this conversation",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to list messages",
			})
		}
		return
	}

	c.JSON(http.StatusOK, msgs)
}
