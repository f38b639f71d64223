package v1

import (
	"net/http"

	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// The whole resource mounts under /applications, so the full paths are
	// /applications/openings/:id/apply and /applications/applications/:id/status.
	applications := protected.Group("/applications")
	{
		applications.POST("/openings/:id/apply", handler.Apply)
		applications.GET("/openings/:id/applications", handler.ListForOpening)
		applications.PATCH("/applications/:id/status", handler.UpdateStatus)
	}
}

type ApplyRequest struct {
	CoverLetter     string  `json:"coverLetter"`
	PreferredRoleID *string `json:"preferredRoleId"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=Accepted Rejected"`
	RoleID *string `json:"roleId"`
}

// Apply submits the caller's application to the opening in the path.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), userID, c.Param("id"), req.CoverLetter, req.PreferredRoleID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// ListForOpening returns the applicants for an opening the caller owns.
func (h *ApplicationHandler) ListForOpening(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.ListForOpening(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdateStatus accepts or rejects an application. Accepting drives the
// team-formation workflow (role fill, opening closure, team enrollment).
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	outcome, err := h.applicationUC.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status, req.RoleID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", outcome)
}
