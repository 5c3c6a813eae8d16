package dto

import (
	"time"

	"github.com/ekastn/mamc-sub001/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint64 `json:"owner_id"`
	InviteCode  string `json:"invite_code,omitempty"`
}

// CollaboratorDTO represents a project collaborator in API responses
type CollaboratorDTO struct {
	User     UserDTO                 `json:"user"`
	Role     models.CollaboratorRole `json:"role"`
	JoinedAt time.Time               `json:"joined_at"`
}

// ProjectMembershipDTO pairs a project with the caller's role on it
type ProjectMembershipDTO struct {
	Project ProjectDTO              `json:"project"`
	Role    models.CollaboratorRole `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project, includeInviteCode bool) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	}
	if includeInviteCode {
		dto.InviteCode = project.InviteCode
	}
	return dto
}

// ToCollaboratorDTO converts a ProjectCollaborator model to CollaboratorDTO
func ToCollaboratorDTO(collaborator models.ProjectCollaborator) CollaboratorDTO {
	return CollaboratorDTO{
		User:     ToUserDTO(collaborator.User),
		Role:     collaborator.Role,
		JoinedAt: collaborator.JoinedAt,
	}
}

// ToProjectMembershipDTO converts a collaboration row to ProjectMembershipDTO
func ToProjectMembershipDTO(collaboration models.ProjectCollaborator) ProjectMembershipDTO {
	return ProjectMembershipDTO{
		Project: ToProjectDTO(collaboration.Project, false),
		Role:    collaboration.Role,
	}
}
