package repository

import (
	"errors"

	"github.com/ekastn/mamc-sub001/internal/constants"
	"github.com/ekastn/mamc-sub001/internal/models"
	"gorm.io/gorm"
)

// GormTrackRepository is a GORM implementation of TrackRepository
type GormTrackRepository struct {
	db *gorm.DB
}

// NewTrackRepository creates a new TrackRepository
func NewTrackRepository(db *gorm.DB) TrackRepository {
	return &GormTrackRepository{db: db}
}

// Create creates a new track with no versions
func (r *GormTrackRepository) Create(track *models.Track) error {
	return r.db.Create(track).Error
}

// CreateWithFirstVersion creates a track and its version 1 atomically
func (r *GormTrackRepository) CreateWithFirstVersion(track *models.Track, version *models.TrackVersion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(track).Error; err != nil {
			return err
		}

		version.TrackID = track.ID
		version.VersionNumber = 1
		if err := tx.Create(version).Error; err != nil {
			return err
		}

		track.CurrentVersionID = &version.ID
		return tx.Model(&models.Track{}).Where("id = ?", track.ID).
			Update("current_version_id", version.ID).Error
	})
}

// FindByID finds a track by ID with optional preloading
func (r *GormTrackRepository) FindByID(id uint64, preload ...string) (*models.Track, error) {
	var track models.Track
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&track, id).Error; err != nil {
		return nil, err
	}

	return &track, nil
}

// FindByProjectAndName finds a track by case-insensitive name
func (r *GormTrackRepository) FindByProjectAndName(projectID uint64, name string) (*models.Track, error) {
	var track models.Track
	if err := r.db.Where("project_id = ? AND LOWER(name) = LOWER(?)", projectID, name).
		First(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

// ListByProject lists all tracks of a project
func (r *GormTrackRepository) ListByProject(projectID uint64) ([]models.Track, error) {
	var tracks []models.Track
	if err := r.db.Where("project_id = ?", projectID).
		Order("CASE WHEN track_order IS NULL THEN 1 ELSE 0 END, track_order ASC, created_at ASC").
		Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

// CreateVersion assigns max+1 as the version number, inserts the row and
// moves the current-version pointer in one transaction. When two uploads
// race, the unique index on (track_id, version_number) rejects the loser
// and the insert is retried with a fresh number.
func (r *GormTrackRepository) CreateVersion(version *models.TrackVersion) error {
	var err error
	for attempt := 0; attempt <= constants.VersionUploadRetries; attempt++ {
		err = r.db.Transaction(func(tx *gorm.DB) error {
			var maxNumber int
			if err := tx.Model(&models.TrackVersion{}).
				Where("track_id = ?", version.TrackID).
				Select("COALESCE(MAX(version_number), 0)").
				Scan(&maxNumber).Error; err != nil {
				return err
			}

			version.ID = 0
			version.VersionNumber = maxNumber + 1
			if err := tx.Create(version).Error; err != nil {
				return err
			}

			return tx.Model(&models.Track{}).Where("id = ?", version.TrackID).
				Update("current_version_id", version.ID).Error
		})
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

// FindVersionByID finds a version by ID with optional preloading
func (r *GormTrackRepository) FindVersionByID(id uint64, preload ...string) (*models.TrackVersion, error) {
	var version models.TrackVersion
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&version, id).Error; err != nil {
		return nil, err
	}

	return &version, nil
}

// ListVersions lists a track's versions ordered by version number
func (r *GormTrackRepository) ListVersions(trackID uint64) ([]models.TrackVersion, error) {
	var versions []models.TrackVersion
	if err := r.db.Where("track_id = ?", trackID).
		Order("version_number ASC").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// SetCurrentVersion repoints the track at one of its versions
func (r *GormTrackRepository) SetCurrentVersion(trackID, versionID uint64) error {
	return r.db.Model(&models.Track{}).Where("id = ?", trackID).
		Update("current_version_id", versionID).Error
}
