package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListChats handles GET /api/chats: the caller's chats, most recently
// active first.
func (h *Handler) ListChats(c *gin.Context) {
	chats, err := h.Chats.List(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// GetChat handles GET /api/chats/:chatId: the full history, members only.
func (h *Handler) GetChat(c *gin.Context) {
	chat, err := h.Chats.Get(c.Param("chatId"), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

type sendMessageInput struct {
	Content string `json:"content"`
}

// SendMessage handles POST /api/chats/:chatId/messages. This is the
// durable leg of the two-phase send; the push leg fans out through the
// chat service's publish.
func (h *Handler) SendMessage(c *gin.Context) {
	var in sendMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chat, err := h.Chats.Send(c.Param("chatId"), userID(c), in.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"chat":    chat,
	})
}

// MarkRead handles PUT /api/chats/:chatId/read.
func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.Chats.MarkRead(c.Param("chatId"), userID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read"})
}
