package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekastn/mamc-sub001/internal/dto"
	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/middleware"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/services"
	"github.com/ekastn/mamc-sub001/internal/utils"
)

// ConflictHandler coordinates conflict lifecycle HTTP handlers.
type ConflictHandler struct {
	conflictService *services.ConflictService
}

// NewConflictHandler creates a new ConflictHandler.
func NewConflictHandler(conflictService *services.ConflictService) *ConflictHandler {
	return &ConflictHandler{
		conflictService: conflictService,
	}
}

func (h *ConflictHandler) conflictID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("conflict_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid conflict ID")
		return 0, false
	}
	return id, true
}

// FileConflict opens a conflict over a set of comments.
func (h *ConflictHandler) FileConflict(c *gin.Context) {
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

	type FileConflictRequest struct {
		CommentIDs []uint64 `json:"comment_ids" binding:"required"`
		Reason     string   `json:"reason"`
	}

	var req FileConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	conflict, err := h.conflictService.FileConflict(services.FileConflictInput{
		ProjectID:  project.ID,
		ReporterID: userID,
		CommentIDs: req.CommentIDs,
		Reason:     req.Reason,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConflictDTO(*conflict))
}

// GetConflict returns a conflict with its comments and resolution.
func (h *ConflictHandler) GetConflict(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	conflictID, ok := h.conflictID(c)
	if !ok {
		return
	}

	conflict, err := h.conflictService.GetConflict(project.ID, conflictID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConflictDTO(*conflict))
}

// ListConflicts lists the project's conflicts, newest first.
func (h *ConflictHandler) ListConflicts(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	params := utils.GetPaginationParams(c)

	conflicts, total, err := h.conflictService.ListConflicts(project.ID, params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	conflictDTOs := make([]dto.ConflictDTO, len(conflicts))
	for i, conflict := range conflicts {
		conflictDTOs[i] = dto.ToConflictDTO(conflict)
	}

	c.JSON(http.StatusOK, gin.H{
		"conflicts": conflictDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Escalate moves an OPEN conflict to ESCALATED.
func (h *ConflictHandler) Escalate(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	conflictID, ok := h.conflictID(c)
	if !ok {
		return
	}

	conflict, err := h.conflictService.Escalate(project.ID, conflictID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConflictDTO(*conflict))
}

// Resolve closes a conflict with a resolution record.
func (h *ConflictHandler) Resolve(c *gin.Context) {
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

	conflictID, ok := h.conflictID(c)
	if !ok {
		return
	}

	type ResolveRequest struct {
		ResolutionType models.ResolutionType `json:"resolution_type" binding:"required"`
		Notes          string                `json:"notes"`
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	resolution, err := h.conflictService.Resolve(services.ResolveInput{
		ProjectID:      project.ID,
		ConflictID:     conflictID,
		ModeratorID:    userID,
		ResolutionType: req.ResolutionType,
		Notes:          req.Notes,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResolutionDTO(*resolution))
}

// Dismiss closes a conflict without a resolution record.
func (h *ConflictHandler) Dismiss(c *gin.Context) {
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

	conflictID, ok := h.conflictID(c)
	if !ok {
		return
	}

	type DismissRequest struct {
		Reason string `json:"reason"`
	}

	// Reason is optional; an empty body is fine.
	var req DismissRequest
	_ = c.ShouldBindJSON(&req)

	conflict, err := h.conflictService.Dismiss(project.ID, conflictID, userID, req.Reason)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConflictDTO(*conflict))
}
