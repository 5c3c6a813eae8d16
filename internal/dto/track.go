package dto

import (
	"time"

	"github.com/ekastn/mamc-sub001/internal/models"
)

// TrackVersionDTO represents a track version in API responses
type TrackVersionDTO struct {
	ID              uint64    `json:"id"`
	TrackID         uint64    `json:"track_id"`
	VersionNumber   int       `json:"version_number"`
	FileRef         string    `json:"file_ref"`
	AuthorID        uint64    `json:"author_id"`
	DurationSeconds *float64  `json:"duration_seconds"`
	ChangeNotes     []string  `json:"change_notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrackDTO represents a track in API responses
type TrackDTO struct {
	ID               uint64            `json:"id"`
	ProjectID        uint64            `json:"project_id"`
	Name             string            `json:"name"`
	TrackOrder       *int              `json:"track_order"`
	CurrentVersionID *uint64           `json:"current_version_id"`
	CurrentVersion   *TrackVersionDTO  `json:"current_version,omitempty"`
	Versions         []TrackVersionDTO `json:"versions,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ToTrackVersionDTO converts a TrackVersion model to TrackVersionDTO
func ToTrackVersionDTO(version models.TrackVersion) TrackVersionDTO {
	notes := version.ChangeNotes
	if notes == nil {
		notes = []string{}
	}
	return TrackVersionDTO{
		ID:              version.ID,
		TrackID:         version.TrackID,
		VersionNumber:   version.VersionNumber,
		FileRef:         version.FileRef,
		AuthorID:        version.AuthorID,
		DurationSeconds: version.DurationSeconds,
		ChangeNotes:     notes,
		CreatedAt:       version.CreatedAt,
	}
}

// ToTrackDTO converts a Track model to TrackDTO
func ToTrackDTO(track models.Track) TrackDTO {
	dto := TrackDTO{
		ID:               track.ID,
		ProjectID:        track.ProjectID,
		Name:             track.Name,
		TrackOrder:       track.TrackOrder,
		CurrentVersionID: track.CurrentVersionID,
		CreatedAt:        track.CreatedAt,
	}

	// Include current version if preloaded
	if track.CurrentVersion != nil {
		current := ToTrackVersionDTO(*track.CurrentVersion)
		dto.CurrentVersion = &current
	}

	// Include history if preloaded
	if len(track.Versions) > 0 {
		dto.Versions = make([]TrackVersionDTO, len(track.Versions))
		for i, version := range track.Versions {
			dto.Versions[i] = ToTrackVersionDTO(version)
		}
	}

	return dto
}
