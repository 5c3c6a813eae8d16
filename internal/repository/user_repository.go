package repository

import (
	"errors"
	"fmt"

	"github.com/ekastn/mamc-sub001/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProject is returned when creating the personal project fails inside the signup transaction.
	ErrCreateProject = errors.New("user repository: create project failed")
	// ErrCreateCollaborator is returned when creating the owner collaborator fails inside the signup transaction.
	ErrCreateCollaborator = errors.New("user repository: create collaborator failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithPersonalProject creates a user, a personal project, and the owner collaborator atomically.
func (r *GormUserRepository) CreateWithPersonalProject(user *models.User, project *models.Project, collaborator *models.ProjectCollaborator) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		project.OwnerID = user.ID

		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		collaborator.ProjectID = project.ID
		collaborator.UserID = user.ID

		if err := tx.Create(collaborator).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCollaborator, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
