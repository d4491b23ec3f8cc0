package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/middleware"
)

// MessageController handles direct messages and unread state
type MessageController struct {
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// SendMessage stores a message and delivers it live when the receiver is connected.
// POST /api/send-message
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid send message payload")
		middleware.HandleValidationError(ctx, err)
		return
	}

	sender, receiver := req.Parties()
	if _, err := c.messageService.SendMessage(ctx.Request.Context(), sender, receiver, req.Message); err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to send message")
		return
	}

	ctx.JSON(http.StatusOK, dto.AckResponse{Success: true, Message: "Message sent successfully"})
}

// GetConversation returns the messages exchanged between two users, oldest first.
// GET /api/messages/:sender/:receiver
func (c *MessageController) GetConversation(ctx *gin.Context) {
	messages, err := c.messageService.Conversation(ctx.Request.Context(), ctx.Param("sender"), ctx.Param("receiver"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching messages")
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// GetUnreadCounts returns unread message counts per sender.
// GET /api/unread-counts/:userEmail
func (c *MessageController) GetUnreadCounts(ctx *gin.Context) {
	counts, err := c.messageService.UnreadCounts(ctx.Request.Context(), ctx.Param("userEmail"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching unread counts")
		return
	}

	ctx.JSON(http.StatusOK, counts)
}

// MarkRead marks every unread message from sender to receiver as read.
// POST /api/mark-read
func (c *MessageController) MarkRead(ctx *gin.Context) {
	var req dto.MarkReadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid mark read payload")
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.messageService.MarkRead(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err, "Error marking messages as read")
		return
	}

	ctx.JSON(http.StatusOK, dto.AckResponse{Success: true})
}

// GetLastMessageTimes returns the time of the latest message per peer.
// GET /api/last-message-times/:userEmail
func (c *MessageController) GetLastMessageTimes(ctx *gin.Context) {
	times, err := c.messageService.LastMessageTimes(ctx.Request.Context(), ctx.Param("userEmail"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching last message times")
		return
	}

	ctx.JSON(http.StatusOK, times)
}

// GetTotalUnread returns the number of unread messages addressed to the user.
// GET /api/total-unread/:userEmail
func (c *MessageController) GetTotalUnread(ctx *gin.Context) {
	total, err := c.messageService.TotalUnread(ctx.Request.Context(), ctx.Param("userEmail"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Error fetching total unread")
		return
	}

	ctx.JSON(http.StatusOK, dto.TotalUnreadResponse{TotalUnread: total})
}
