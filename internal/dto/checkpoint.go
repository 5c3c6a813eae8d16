package dto

import (
	"time"

	"github.com/ekastn/mamc-sub001/internal/models"
)

// CheckpointEntryDTO pins one track version inside a checkpoint
type CheckpointEntryDTO struct {
	TrackID        uint64           `json:"track_id"`
	TrackVersionID uint64           `json:"track_version_id"`
	TrackVersion   *TrackVersionDTO `json:"track_version,omitempty"`
}

// CheckpointDTO represents a checkpoint in API responses
type CheckpointDTO struct {
	ID          uint64               `json:"id"`
	ProjectID   uint64               `json:"project_id"`
	CreatorID   uint64               `json:"creator_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
	Entries     []CheckpointEntryDTO `json:"entries"`
}

// ToCheckpointDTO converts a Checkpoint model to CheckpointDTO
func ToCheckpointDTO(checkpoint models.Checkpoint) CheckpointDTO {
	dto := CheckpointDTO{
		ID:          checkpoint.ID,
		ProjectID:   checkpoint.ProjectID,
		CreatorID:   checkpoint.CreatorID,
		Name:        checkpoint.Name,
		Description: checkpoint.Description,
		CreatedAt:   checkpoint.CreatedAt,
		Entries:     make([]CheckpointEntryDTO, len(checkpoint.Entries)),
	}

	for i, entry := range checkpoint.Entries {
		entryDTO := CheckpointEntryDTO{
			TrackID:        entry.TrackID,
			TrackVersionID: entry.TrackVersionID,
		}
		if entry.TrackVersion.ID != 0 {
			version := ToTrackVersionDTO(entry.TrackVersion)
			entryDTO.TrackVersion = &version
		}
		dto.Entries[i] = entryDTO
	}

	return dto
}
