package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekastn/mamc-sub001/internal/dto"
	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/middleware"
	"github.com/ekastn/mamc-sub001/internal/services"
	"github.com/ekastn/mamc-sub001/internal/utils"
)

// CheckpointHandler coordinates checkpoint HTTP handlers.
type CheckpointHandler struct {
	checkpointService *services.CheckpointService
}

// NewCheckpointHandler creates a new CheckpointHandler.
func NewCheckpointHandler(checkpointService *services.CheckpointService) *CheckpointHandler {
	return &CheckpointHandler{
		checkpointService: checkpointService,
	}
}

// CreateCheckpoint snapshots the current version of every track.
func (h *CheckpointHandler) CreateCheckpoint(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateCheckpointRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	checkpoint, err := h.checkpointService.CreateCheckpoint(services.CreateCheckpointInput{
		ProjectID:   project.ID,
		CreatorID:   userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCheckpointDTO(*checkpoint))
}

// GetCheckpoint returns one checkpoint with its pinned versions.
func (h *CheckpointHandler) GetCheckpoint(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	checkpointID, err := strconv.ParseUint(c.Param("checkpoint_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid checkpoint ID")
		return
	}

	checkpoint, err := h.checkpointService.GetCheckpoint(project.ID, checkpointID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckpointDTO(*checkpoint))
}

// ListCheckpoints lists the project's checkpoints, newest first.
func (h *CheckpointHandler) ListCheckpoints(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	params := utils.GetPaginationParams(c)

	checkpoints, total, err := h.checkpointService.ListCheckpoints(project.ID, params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	checkpointDTOs := make([]dto.CheckpointDTO, len(checkpoints))
	for i, checkpoint := range checkpoints {
		checkpointDTOs[i] = dto.ToCheckpointDTO(checkpoint)
	}

	c.JSON(http.StatusOK, gin.H{
		"checkpoints": checkpointDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
