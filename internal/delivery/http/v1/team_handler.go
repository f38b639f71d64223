package v1

import (
	"net/http"
	"time"

	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamUC domain.TeamUsecase
}

// NewTeamHandler registers team and team-chat routes
func NewTeamHandler(protected *gin.RouterGroup, teamUC domain.TeamUsecase) {
	handler := &TeamHandler{teamUC: teamUC}

	teams := protected.Group("/teams")
	{
		teams.GET("", handler.ListMyTeams)
		teams.GET("/:id/members", handler.GetMembers)
		teams.GET("/:id/chat", handler.GetMessages)
		teams.POST("/:id/chat", handler.SendMessage)
	}
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	teams, err := h.teamUC.ListMyTeams(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Teams retrieved", teams)
}

func (h *TeamHandler) GetMembers(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	members, err := h.teamUC.GetMembers(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Members retrieved", members)
}

// GetMessages returns the team's chat history ascending by timestamp.
// Polling clients pass ?after=<RFC3339> to fetch only newer messages.
func (h *TeamHandler) GetMessages(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var after *time.Time
	if raw := c.Query("after"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid after timestamp, expected RFC3339"))
			return
		}
		after = &t
	}

	messages, err := h.teamUC.GetMessages(c.Request.Context(), userID, c.Param("id"), after)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Messages retrieved", messages)
}

func (h *TeamHandler) SendMessage(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	msg, err := h.teamUC.SendMessage(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", msg)
}
