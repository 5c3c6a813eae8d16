package services

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"gorm.io/gorm"
)

// TrackService owns the append-only version history per track and the
// single mutable current-version pointer.
type TrackService struct {
	trackRepo repository.TrackRepository
}

// NewTrackService creates a new TrackService.
func NewTrackService(trackRepo repository.TrackRepository) *TrackService {
	return &TrackService{
		trackRepo: trackRepo,
	}
}

// CreateTrackInput represents parameters to create a track.
type CreateTrackInput struct {
	ProjectID  uint64
	Name       string
	TrackOrder *int
}

// CreateTrack creates a track with an empty version list and no current
// version. Names are unique within a project, case-insensitively.
func (s *TrackService) CreateTrack(input CreateTrackInput) (*models.Track, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.Validation("name", "track name cannot be empty")
	}

	if _, err := s.trackRepo.FindByProjectAndName(input.ProjectID, name); err == nil {
		return nil, apperrors.Validation("name", "a track with this name already exists in the project")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check track name: %w", err)
	}

	track := &models.Track{
		ProjectID:  input.ProjectID,
		Name:       name,
		TrackOrder: input.TrackOrder,
	}

	if err := s.trackRepo.Create(track); err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}

	return track, nil
}

// UploadVersionInput represents parameters to append a version.
type UploadVersionInput struct {
	ProjectID       uint64
	TrackID         uint64
	FileRef         string
	AuthorID        uint64
	DurationSeconds *float64
	ChangeNotes     []string
}

// UploadVersion appends a new version to the track's history and makes it
// current. Version numbers are contiguous from 1; the repository retries
// once when concurrent uploads collide on a number, and an exhausted retry
// surfaces as a conflict error rather than a partial version.
func (s *TrackService) UploadVersion(input UploadVersionInput) (*models.TrackVersion, error) {
	if strings.TrimSpace(input.FileRef) == "" {
		return nil, apperrors.Validation("file_ref", "file reference is required")
	}

	track, err := s.trackRepo.FindByID(input.TrackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}
	if track.ProjectID != input.ProjectID {
		return nil, apperrors.NotFound("track not found in this project")
	}

	version := &models.TrackVersion{
		TrackID:         track.ID,
		FileRef:         input.FileRef,
		AuthorID:        input.AuthorID,
		DurationSeconds: input.DurationSeconds,
		ChangeNotes:     input.ChangeNotes,
	}

	if err := s.trackRepo.CreateVersion(version); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("version numbering contention, please retry the upload")
		}
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	return version, nil
}

// UploadVersionForNewTrack atomically creates a track (per CreateTrack
// rules) and uploads its first version.
func (s *TrackService) UploadVersionForNewTrack(input CreateTrackInput, upload UploadVersionInput) (*models.Track, *models.TrackVersion, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil, apperrors.Validation("name", "track name cannot be empty")
	}
	if strings.TrimSpace(upload.FileRef) == "" {
		return nil, nil, apperrors.Validation("file_ref", "file reference is required")
	}

	if _, err := s.trackRepo.FindByProjectAndName(input.ProjectID, name); err == nil {
		return nil, nil, apperrors.Validation("name", "a track with this name already exists in the project")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check track name: %w", err)
	}

	track := &models.Track{
		ProjectID:  input.ProjectID,
		Name:       name,
		TrackOrder: input.TrackOrder,
	}
	version := &models.TrackVersion{
		FileRef:         upload.FileRef,
		AuthorID:        upload.AuthorID,
		DurationSeconds: upload.DurationSeconds,
		ChangeNotes:     upload.ChangeNotes,
	}

	if err := s.trackRepo.CreateWithFirstVersion(track, version); err != nil {
		return nil, nil, fmt.Errorf("failed to create track with first version: %w", err)
	}

	return track, version, nil
}

// SetCurrentVersion repoints the track's current version. This is how
// rollback works: the pointer moves, history stays untouched.
func (s *TrackService) SetCurrentVersion(projectID, trackID, versionID uint64) error {
	track, err := s.trackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("track not found")
		}
		return fmt.Errorf("failed to find track: %w", err)
	}
	if track.ProjectID != projectID {
		return apperrors.NotFound("track not found in this project")
	}

	version, err := s.trackRepo.FindVersionByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("track version not found")
		}
		return fmt.Errorf("failed to find version: %w", err)
	}
	if version.TrackID != track.ID {
		return apperrors.NotFound("version does not belong to this track")
	}

	if err := s.trackRepo.SetCurrentVersion(track.ID, version.ID); err != nil {
		return fmt.Errorf("failed to set current version: %w", err)
	}

	return nil
}

// GetCurrentVersion returns the track's current version, or nil for a
// track with no versions yet.
func (s *TrackService) GetCurrentVersion(trackID uint64) (*models.TrackVersion, error) {
	track, err := s.trackRepo.FindByID(trackID, "CurrentVersion")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}

	return track.CurrentVersion, nil
}

// GetTrack returns a track scoped to a project, with versions loaded.
func (s *TrackService) GetTrack(projectID, trackID uint64) (*models.Track, error) {
	track, err := s.trackRepo.FindByID(trackID, "Versions", "CurrentVersion")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}
	if track.ProjectID != projectID {
		return nil, apperrors.NotFound("track not found in this project")
	}

	return track, nil
}

// ListTracks lists a project's tracks in play order.
func (s *TrackService) ListTracks(projectID uint64) ([]models.Track, error) {
	tracks, err := s.trackRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// ListVersions lists a track's full history, oldest first.
func (s *TrackService) ListVersions(projectID, trackID uint64) ([]models.TrackVersion, error) {
	track, err := s.trackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}
	if track.ProjectID != projectID {
		return nil, apperrors.NotFound("track not found in this project")
	}

	versions, err := s.trackRepo.ListVersions(trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return versions, nil
}
