package repository

import (
	"github.com/ekastn/mamc-sub001/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByInviteCode finds a project by invite code
func (r *GormProjectRepository) FindByInviteCode(code string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("invite_code = ?", code).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// AddCollaborator adds a collaborator to a project
func (r *GormProjectRepository) AddCollaborator(collaborator *models.ProjectCollaborator) error {
	return r.db.Create(collaborator).Error
}

// RemoveCollaborator removes a collaborator from a project
func (r *GormProjectRepository) RemoveCollaborator(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectCollaborator{}).Error
}

// FindCollaborator finds a specific project collaborator
func (r *GormProjectRepository) FindCollaborator(projectID, userID uint64) (*models.ProjectCollaborator, error) {
	var collaborator models.ProjectCollaborator
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&collaborator).Error; err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// UpdateCollaboratorRole changes a collaborator's role
func (r *GormProjectRepository) UpdateCollaboratorRole(projectID, userID uint64, role models.CollaboratorRole) error {
	return r.db.Model(&models.ProjectCollaborator{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role).Error
}

// ListCollaborators lists all collaborators of a project
func (r *GormProjectRepository) ListCollaborators(projectID uint64) ([]models.ProjectCollaborator, error) {
	var collaborators []models.ProjectCollaborator
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&collaborators).Error; err != nil {
		return nil, err
	}
	return collaborators, nil
}

// ListCollaborationsByUserID lists all projects a user collaborates on
func (r *GormProjectRepository) ListCollaborationsByUserID(userID uint64) ([]models.ProjectCollaborator, error) {
	var collaborations []models.ProjectCollaborator
	if err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Find(&collaborations).Error; err != nil {
		return nil, err
	}
	return collaborations, nil
}
