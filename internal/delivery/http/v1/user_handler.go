package v1

import (
	"net/http"

	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC        domain.UserUsecase
	applicationUC domain.ApplicationUsecase
}

// NewUserHandler registers profile routes. The /users/me routes must be
// registered before /users/:id so gin does not treat "me" as an id.
func NewUserHandler(public, protected *gin.RouterGroup, userUC domain.UserUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &UserHandler{userUC: userUC, applicationUC: applicationUC}

	protected.GET("/users/me/applications", handler.GetMyApplications)
	protected.PATCH("/users/me", handler.UpdateMe)
	public.GET("/users/:id", handler.GetProfile)
}

// GetProfile returns the public profile with portfolio and openings.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userUC.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var patch domain.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), userID, &patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", user)
}

func (h *UserHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}
