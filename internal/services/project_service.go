package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/ekastn/mamc-sub001/internal/utils"
	"gorm.io/gorm"
)

// ProjectService provides business logic for project and collaborator
// operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateProject creates a new project and registers the owner collaborator.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Validation("name", "project name cannot be empty")
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	project := &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		OwnerID:     input.OwnerID,
		InviteCode:  inviteCode,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	collaborator := &models.ProjectCollaborator{
		ProjectID: project.ID,
		UserID:    input.OwnerID,
		Role:      models.RoleOwner,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddCollaborator(collaborator); err != nil {
		return nil, fmt.Errorf("failed to add owner to project: %w", err)
	}

	return project, nil
}

// ListProjectsForUser returns the collaborations of a user, project loaded.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.ProjectCollaborator, error) {
	collaborations, err := s.projectRepo.ListCollaborationsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return collaborations, nil
}

// GetProjectWithCollaborators returns a project and everyone on it.
func (s *ProjectService) GetProjectWithCollaborators(projectID uint64) (*models.Project, []models.ProjectCollaborator, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("project not found")
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	collaborators, err := s.projectRepo.ListCollaborators(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project collaborators: %w", err)
	}

	return project, collaborators, nil
}

// UpdateProject updates a project's name and description.
func (s *ProjectService) UpdateProject(projectID uint64, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("name", "project name cannot be empty")
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Name = strings.TrimSpace(name)
	project.Description = description
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// JoinProjectByInvite adds a user to a project via invite code. New
// collaborators always start as MEMBER; the owner promotes them later.
func (s *ProjectService) JoinProjectByInvite(userID uint64, inviteCode string) (*models.Project, error) {
	project, err := s.projectRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("invalid invite code")
		}
		return nil, fmt.Errorf("failed to find project by invite code: %w", err)
	}

	if _, err := s.projectRepo.FindCollaborator(project.ID, userID); err == nil {
		return nil, apperrors.Validation("invite_code", "user is already a collaborator on this project")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify collaboration: %w", err)
	}

	collaborator := &models.ProjectCollaborator{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddCollaborator(collaborator); err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	return project, nil
}

// RegenerateInviteCode generates a new invite code for the project.
func (s *ProjectService) RegenerateInviteCode(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	project.InviteCode = code
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}

	return project, nil
}

// ChangeCollaboratorRole sets a collaborator's role. The OWNER role is
// bound to Project.OwnerID and cannot be granted or revoked here.
func (s *ProjectService) ChangeCollaboratorRole(projectID, targetID uint64, role models.CollaboratorRole) error {
	if !role.IsValid() || role == models.RoleOwner {
		return apperrors.Validation("role", "role must be one of PRODUCER, MIXER, MEMBER, MODERATOR")
	}

	collaborator, err := s.projectRepo.FindCollaborator(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("project collaborator not found")
		}
		return fmt.Errorf("failed to find collaborator: %w", err)
	}

	if collaborator.Role == models.RoleOwner {
		return apperrors.Validation("role", "the project owner's role cannot be changed")
	}

	if err := s.projectRepo.UpdateCollaboratorRole(projectID, targetID, role); err != nil {
		return fmt.Errorf("failed to update collaborator role: %w", err)
	}

	return nil
}

// RemoveCollaborator removes a collaborator from the project.
func (s *ProjectService) RemoveCollaborator(projectID, actorID, targetID uint64) error {
	if targetID == actorID {
		return apperrors.Validation("user_id", "cannot remove yourself from the project")
	}

	collaborator, err := s.projectRepo.FindCollaborator(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("project collaborator not found")
		}
		return fmt.Errorf("failed to find collaborator: %w", err)
	}

	if collaborator.Role == models.RoleOwner {
		return apperrors.Validation("user_id", "the project owner cannot be removed")
	}

	if err := s.projectRepo.RemoveCollaborator(projectID, targetID); err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}

	return nil
}
