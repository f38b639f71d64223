package v1

import (
	"net/http"

	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OpeningHandler struct {
	openingUC domain.OpeningUsecase
}

// NewOpeningHandler registers opening routes. Listing and detail are
// public; create/update/delete require an authenticated recruiter.
func NewOpeningHandler(public, protected *gin.RouterGroup, openingUC domain.OpeningUsecase) {
	handler := &OpeningHandler{openingUC: openingUC}

	public.GET("/openings", handler.List)
	public.GET("/openings/:id", handler.GetByID)
	protected.POST("/openings", handler.Create)
	protected.PATCH("/openings/:id", handler.Update)
	protected.DELETE("/openings/:id", handler.Delete)
}

type CreateRoleRequest struct {
	Name  string `json:"name" binding:"required"`
	Slots int    `json:"slots" binding:"required,min=1"`
}

type CreateOpeningRequest struct {
	Title        string              `json:"title" binding:"required"`
	Type         string              `json:"type" binding:"required"`
	Stage        string              `json:"stage"`
	Description  string              `json:"description"`
	Timeline     string              `json:"timeline"`
	Commitment   string              `json:"commitment"`
	Compensation string              `json:"compensation"`
	Location     string              `json:"location"`
	Tags         []string            `json:"tags"`
	Roles        []CreateRoleRequest `json:"roles" binding:"required,min=1,dive"`
}

func (h *OpeningHandler) List(c *gin.Context) {
	filter := domain.OpeningFilter{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		Commitment: c.Query("commitment"),
		Location:   c.Query("location"),
	}

	openings, err := h.openingUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Openings retrieved", openings)
}

func (h *OpeningHandler) GetByID(c *gin.Context) {
	opening, err := h.openingUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Opening retrieved", opening)
}

func (h *OpeningHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req CreateOpeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	opening := &domain.Opening{
		Title:        req.Title,
		Type:         req.Type,
		Stage:        req.Stage,
		Description:  req.Description,
		Timeline:     req.Timeline,
		Commitment:   req.Commitment,
		Compensation: req.Compensation,
		Location:     req.Location,
		Tags:         req.Tags,
	}
	for _, role := range req.Roles {
		opening.Roles = append(opening.Roles, domain.Role{Name: role.Name, Slots: role.Slots})
	}

	created, err := h.openingUC.Create(c.Request.Context(), userID, opening)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Opening created", created)
}

func (h *OpeningHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var patch domain.OpeningUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	opening, err := h.openingUC.Update(c.Request.Context(), userID, c.Param("id"), &patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Opening updated", opening)
}

func (h *OpeningHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.openingUC.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Opening deleted successfully", nil)
}
