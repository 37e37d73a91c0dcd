package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/dto"
	"github.com/skywalker/milestone_backend/internal/middleware"
)

// milestoneHandler handles HTTP requests related to milestones.
type milestoneHandler struct {
	milestoneService portssvc.MilestoneSvcFacade
}

// newMilestoneHandler creates a new milestoneHandler.
func newMilestoneHandler(ms portssvc.MilestoneSvcFacade) *milestoneHandler {
	return &milestoneHandler{
		milestoneService: ms,
	}
}

// registerMilestoneRoutes registers all milestone routes.
func registerMilestoneRoutes(rg *gin.RouterGroup, milestoneService portssvc.MilestoneSvcFacade) {
	h := newMilestoneHandler(milestoneService)

	milestones := rg.Group("/milestones")
	{
		milestones.GET("", h.listMilestones)
		milestones.POST("", h.createMilestone)
		milestones.GET("/:id", h.getMilestone)
		milestones.PUT("/:id", h.updateMilestone)
		milestones.DELETE("/:id", h.deleteMilestone)
	}
}

// listMilestones godoc
// @Summary List milestones
// @Description Lists the authenticated user's milestones, newest first.
// @Tags milestones
// @Produce json
// @Success 200 {object} dto.ListMilestonesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/milestones [get]
func (h *milestoneHandler) listMilestones(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	milestones, err := h.milestoneService.ListMilestones(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list milestones")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMilestonesResponse(milestones))
}

// createMilestone godoc
// @Summary Create a milestone
// @Description Creates a milestone owned by the authenticated user.
// @Tags milestones
// @Accept json
// @Produce json
// @Param milestone body dto.CreateMilestoneRequest true "Milestone details"
// @Success 201 {object} dto.MilestoneResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/milestones [post]
func (h *milestoneHandler) createMilestone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create milestone")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMilestoneResponse(milestone))
}

// getMilestone godoc
// @Summary Get a milestone
// @Description Retrieves one of the authenticated user's milestones by ID.
// @Tags milestones
// @Produce json
// @Param id path string true "Milestone ID"
// @Success 200 {object} dto.MilestoneResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/milestones/{id} [get]
func (h *milestoneHandler) getMilestone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	milestone, err := h.milestoneService.GetMilestoneByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Milestone not found"})
			return
		}
		respondError(c, logger, err, "Failed to get milestone")
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneResponse(milestone))
}

// updateMilestone godoc
// @Summary Update a milestone
// @Description Updates one of the authenticated user's milestones.
// @Tags milestones
// @Accept json
// @Produce json
// @Param id path string true "Milestone ID"
// @Param milestone body dto.UpdateMilestoneRequest true "Fields to update"
// @Success 200 {object} dto.MilestoneResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/milestones/{id} [put]
func (h *milestoneHandler) updateMilestone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	milestone, err := h.milestoneService.UpdateMilestone(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Milestone not found"})
			return
		}
		respondError(c, logger, err, "Failed to update milestone")
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneResponse(milestone))
}

// deleteMilestone godoc
// @Summary Delete a milestone
// @Description Deletes one of the authenticated user's milestones.
// @Tags milestones
// @Param id path string true "Milestone ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/milestones/{id} [delete]
func (h *milestoneHandler) deleteMilestone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.milestoneService.DeleteMilestone(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Milestone not found"})
			return
		}
		respondError(c, logger, err, "Failed to delete milestone")
		return
	}

	c.Status(http.StatusNoContent)
}
