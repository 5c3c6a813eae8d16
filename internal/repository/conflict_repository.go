package repository

import (
	"errors"

	"github.com/ekastn/mamc-sub001/internal/database"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/utils"
	"gorm.io/gorm"
)

// ErrStatusChanged is returned when a conditional status update matched no
// row: the conflict moved to a different status between read and write.
var ErrStatusChanged = errors.New("conflict repository: status changed concurrently")

// GormConflictRepository is a GORM implementation of ConflictRepository
type GormConflictRepository struct {
	db *gorm.DB
}

// NewConflictRepository creates a new ConflictRepository
func NewConflictRepository(db *gorm.DB) ConflictRepository {
	return &GormConflictRepository{db: db}
}

// Create inserts the conflict and links its comment set atomically
func (r *GormConflictRepository) Create(conflict *models.Conflict, comments []models.TrackComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conflict).Error; err != nil {
			return err
		}

		if err := tx.Model(conflict).Association("Comments").Append(&comments); err != nil {
			return err
		}

		return nil
	})
}

// FindByID finds a conflict by ID with optional preloading
func (r *GormConflictRepository) FindByID(id uint64, preload ...string) (*models.Conflict, error) {
	var conflict models.Conflict
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&conflict, id).Error; err != nil {
		return nil, err
	}

	return &conflict, nil
}

// ListByProject lists conflicts newest first
func (r *GormConflictRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Conflict, int64, error) {
	query := r.db.Model(&models.Conflict{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conflicts []models.Conflict
	if err := query.Preload("Comments").Preload("Resolution").
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&conflicts).Error; err != nil {
		return nil, 0, err
	}

	return conflicts, total, nil
}

// UpdateStatus conditionally moves the conflict between statuses. The WHERE
// clause carries the expected previous statuses so two concurrent
// moderators cannot both win; the loser sees ErrStatusChanged.
func (r *GormConflictRepository) UpdateStatus(id uint64, from []models.ConflictStatus, to models.ConflictStatus) error {
	res := r.db.Model(&models.Conflict{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// DismissWithReason moves the conflict to DISMISSED and records who
// dismissed it and why, guarded like UpdateStatus.
func (r *GormConflictRepository) DismissWithReason(id uint64, from []models.ConflictStatus, moderatorID uint64, reason string) error {
	res := r.db.Model(&models.Conflict{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":          models.ConflictDismissed,
			"dismissed_by_id": moderatorID,
			"dismiss_reason":  reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// ResolveWithRecord moves the conflict to RESOLVED and writes its single
// resolution row in one transaction.
func (r *GormConflictRepository) ResolveWithRecord(resolution *models.ConflictResolution, from []models.ConflictStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Conflict{}).
			Where("id = ? AND status IN ?", resolution.ConflictID, from).
			Update("status", models.ConflictResolved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusChanged
		}

		return tx.Create(resolution).Error
	})
}
