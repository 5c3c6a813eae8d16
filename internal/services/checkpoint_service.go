package services

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/ekastn/mamc-sub001/internal/utils"
	"gorm.io/gorm"
)

// CheckpointService captures immutable snapshots of "current version per
// track". There is no update path: new snapshots mean new checkpoints.
type CheckpointService struct {
	checkpointRepo repository.CheckpointRepository
}

// NewCheckpointService creates a new CheckpointService.
func NewCheckpointService(checkpointRepo repository.CheckpointRepository) *CheckpointService {
	return &CheckpointService{
		checkpointRepo: checkpointRepo,
	}
}

// CreateCheckpointInput represents parameters to create a checkpoint.
type CreateCheckpointInput struct {
	ProjectID   uint64
	CreatorID   uint64
	Name        string
	Description string
}

// CreateCheckpoint pins the current version of every track that has one.
// Tracks without a current version are skipped; a project with nothing to
// snapshot is a validation error.
func (s *CheckpointService) CreateCheckpoint(input CreateCheckpointInput) (*models.Checkpoint, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.Validation("name", "checkpoint name cannot be empty")
	}

	checkpoint := &models.Checkpoint{
		ProjectID:   input.ProjectID,
		CreatorID:   input.CreatorID,
		Name:        name,
		Description: input.Description,
	}

	if err := s.checkpointRepo.CreateFromCurrentVersions(checkpoint); err != nil {
		if errors.Is(err, repository.ErrNothingToSnapshot) {
			return nil, apperrors.Validation("", "project has no tracks with a current version to snapshot")
		}
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return checkpoint, nil
}

// GetCheckpoint returns a checkpoint scoped to a project.
func (s *CheckpointService) GetCheckpoint(projectID, checkpointID uint64) (*models.Checkpoint, error) {
	checkpoint, err := s.checkpointRepo.FindByID(checkpointID, "Entries.TrackVersion")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("checkpoint not found")
		}
		return nil, fmt.Errorf("failed to find checkpoint: %w", err)
	}
	if checkpoint.ProjectID != projectID {
		return nil, apperrors.NotFound("checkpoint not found in this project")
	}

	return checkpoint, nil
}

// ListCheckpoints lists a project's checkpoints, most recent first.
func (s *CheckpointService) ListCheckpoints(projectID uint64, params utils.PaginationParams) ([]models.Checkpoint, int64, error) {
	checkpoints, total, err := s.checkpointRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	return checkpoints, total, nil
}
