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
)

// ProjectHandler coordinates project and collaborator HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project, true))
}

// ListProjects returns the projects the caller collaborates on.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	collaborations, err := h.projectService.ListProjectsForUser(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	memberships := make([]dto.ProjectMembershipDTO, len(collaborations))
	for i, collaboration := range collaborations {
		memberships[i] = dto.ToProjectMembershipDTO(collaboration)
	}

	c.JSON(http.StatusOK, gin.H{"projects": memberships})
}

// GetProject returns a project with its collaborators.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	collaborator, _ := middleware.GetCollaborator(c)

	_, collaborators, err := h.projectService.GetProjectWithCollaborators(project.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	collaboratorDTOs := make([]dto.CollaboratorDTO, len(collaborators))
	for i, collab := range collaborators {
		collaboratorDTOs[i] = dto.ToCollaboratorDTO(collab)
	}

	// The invite code is only shown to the owner.
	c.JSON(http.StatusOK, gin.H{
		"project":       dto.ToProjectDTO(project, collaborator.Role == models.RoleOwner),
		"collaborators": collaboratorDTOs,
	})
}

// UpdateProject updates a project's name and description.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(project.ID, req.Name, req.Description)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

// JoinProject adds the caller to a project via invite code.
func (h *ProjectHandler) JoinProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	type JoinProjectRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.JoinProjectByInvite(userID, req.InviteCode)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, false))
}

// RegenerateInviteCode rotates the project's invite code.
func (h *ProjectHandler) RegenerateInviteCode(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	updated, err := h.projectService.RegenerateInviteCode(project.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

// ChangeCollaboratorRole sets a collaborator's role.
func (h *ProjectHandler) ChangeCollaboratorRole(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid user ID")
		return
	}

	type ChangeRoleRequest struct {
		Role models.CollaboratorRole `json:"role" binding:"required"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.ChangeCollaboratorRole(project.ID, targetID, req.Role); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator role updated"})
}

// RemoveCollaborator removes a collaborator from the project.
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
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

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveCollaborator(project.ID, userID, targetID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed"})
}
