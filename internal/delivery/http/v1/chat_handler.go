package v1

import (
	"net/http"

	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUC domain.ChatUsecase
}

// NewChatHandler registers direct-message routes
func NewChatHandler(protected *gin.RouterGroup, chatUC domain.ChatUsecase) {
	handler := &ChatHandler{chatUC: chatUC}

	chat := protected.Group("/chat")
	{
		chat.GET("/direct/:userId", handler.GetDirectMessages)
		chat.POST("/direct/:userId", handler.SendDirectMessage)
		chat.GET("/conversations", handler.GetConversations)
	}
}

func (h *ChatHandler) GetDirectMessages(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	messages, err := h.chatUC.GetDirectMessages(c.Request.Context(), userID, c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Messages retrieved", messages)
}

func (h *ChatHandler) SendDirectMessage(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	msg, err := h.chatUC.SendDirectMessage(c.Request.Context(), userID, c.Param("userId"), req.Text)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", msg)
}

// GetConversations lists the distinct users the caller has exchanged
// direct messages with.
func (h *ChatHandler) GetConversations(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	peers, err := h.chatUC.GetConversations(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conversations retrieved", peers)
}
