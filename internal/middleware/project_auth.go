package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekastn/mamc-sub001/internal/constants"
	"github.com/ekastn/mamc-sub001/internal/database"
	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
)

// RequireProjectAccess checks that the caller collaborates on the project
// named in the URL and stashes the project and collaborator row in the
// context for the handlers downstream.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apperrors.NotFoundResponse(c, "Project not found")
			c.Abort()
			return
		}

		// Non-collaborators get 404, not 403, to avoid leaking that the
		// project exists.
		var collaborator models.ProjectCollaborator
		err = database.GetDB().
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&collaborator).Error
		if err != nil {
			apperrors.NotFoundResponse(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Set(constants.ContextKeyCollaborator, collaborator)
		c.Next()
	}
}

// GetProject retrieves the project placed in context by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}

// GetCollaborator retrieves the caller's collaborator row from context
func GetCollaborator(c *gin.Context) (models.ProjectCollaborator, bool) {
	value, exists := c.Get(constants.ContextKeyCollaborator)
	if !exists {
		return models.ProjectCollaborator{}, false
	}
	collaborator, ok := value.(models.ProjectCollaborator)
	return collaborator, ok
}

// RequireProjectOwner allows only the OWNER collaborator through.
func RequireProjectOwner() gin.HandlerFunc {
	return requireRole(func(role models.CollaboratorRole) bool {
		return role == models.RoleOwner
	}, "Only the project owner can perform this action")
}

// RequireCheckpointRole gates snapshot creation to PRODUCER, MIXER or OWNER.
func RequireCheckpointRole() gin.HandlerFunc {
	return requireRole(models.CollaboratorRole.CanCreateCheckpoints,
		"Creating checkpoints requires the PRODUCER, MIXER or OWNER role")
}

// RequireModeratorRole gates conflict transitions to MODERATOR or OWNER.
func RequireModeratorRole() gin.HandlerFunc {
	return requireRole(models.CollaboratorRole.CanModerate,
		"Moderating conflicts requires the MODERATOR or OWNER role")
}

func requireRole(allowed func(models.CollaboratorRole) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		collaborator, ok := GetCollaborator(c)
		if !ok {
			apperrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		if !allowed(collaborator.Role) {
			apperrors.Forbidden(c, message)
			c.Abort()
			return
		}

		c.Next()
	}
}
