package repository

import (
	"errors"

	"github.com/ekastn/mamc-sub001/internal/database"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/utils"
	"gorm.io/gorm"
)

// ErrNothingToSnapshot is returned when no track in the project has a
// current version to pin.
var ErrNothingToSnapshot = errors.New("checkpoint repository: no current versions to snapshot")

// GormCheckpointRepository is a GORM implementation of CheckpointRepository
type GormCheckpointRepository struct {
	db *gorm.DB
}

// NewCheckpointRepository creates a new CheckpointRepository
func NewCheckpointRepository(db *gorm.DB) CheckpointRepository {
	return &GormCheckpointRepository{db: db}
}

// CreateFromCurrentVersions pins the project's current version per track.
// The pointers are read inside the same transaction that writes the
// checkpoint, so a concurrent pointer move cannot slip between read and
// write.
func (r *GormCheckpointRepository) CreateFromCurrentVersions(checkpoint *models.Checkpoint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tracks []models.Track
		if err := tx.Where("project_id = ? AND current_version_id IS NOT NULL", checkpoint.ProjectID).
			Order("id ASC").
			Find(&tracks).Error; err != nil {
			return err
		}
		if len(tracks) == 0 {
			return ErrNothingToSnapshot
		}

		if err := tx.Create(checkpoint).Error; err != nil {
			return err
		}

		entries := make([]models.CheckpointTrackVersion, len(tracks))
		for i, track := range tracks {
			entries[i] = models.CheckpointTrackVersion{
				CheckpointID:   checkpoint.ID,
				TrackID:        track.ID,
				TrackVersionID: *track.CurrentVersionID,
			}
		}

		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		checkpoint.Entries = entries
		return nil
	})
}

// FindByID finds a checkpoint with its entries
func (r *GormCheckpointRepository) FindByID(id uint64, preload ...string) (*models.Checkpoint, error) {
	var checkpoint models.Checkpoint
	query := r.db.Preload("Entries")

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&checkpoint, id).Error; err != nil {
		return nil, err
	}

	return &checkpoint, nil
}

// ListByProject lists checkpoints newest first
func (r *GormCheckpointRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Checkpoint, int64, error) {
	query := r.db.Model(&models.Checkpoint{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var checkpoints []models.Checkpoint
	if err := query.Preload("Entries").
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&checkpoints).Error; err != nil {
		return nil, 0, err
	}

	return checkpoints, total, nil
}
