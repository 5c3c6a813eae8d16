package dto

import (
	"time"

	"github.com/ekastn/mamc-sub001/internal/models"
)

// ResolutionDTO represents a conflict resolution in API responses
type ResolutionDTO struct {
	ID             uint64                `json:"id"`
	ConflictID     uint64                `json:"conflict_id"`
	ModeratorID    uint64                `json:"moderator_id"`
	ResolutionType models.ResolutionType `json:"resolution_type"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ConflictDTO represents a conflict in API responses
type ConflictDTO struct {
	ID         uint64                `json:"id"`
	ProjectID  uint64                `json:"project_id"`
	ReporterID uint64                `json:"reporter_id"`
	Reason     string                `json:"reason"`
	Status     models.ConflictStatus `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	CommentIDs []uint64              `json:"comment_ids,omitempty"`
	Comments   []CommentDTO          `json:"comments,omitempty"`
	Resolution *ResolutionDTO        `json:"resolution,omitempty"`

	DismissedByID *uint64 `json:"dismissed_by_id,omitempty"`
	DismissReason string  `json:"dismiss_reason,omitempty"`
}

// ToResolutionDTO converts a ConflictResolution model to ResolutionDTO
func ToResolutionDTO(resolution models.ConflictResolution) ResolutionDTO {
	return ResolutionDTO{
		ID:             resolution.ID,
		ConflictID:     resolution.ConflictID,
		ModeratorID:    resolution.ModeratorID,
		ResolutionType: resolution.ResolutionType,
		Notes:          resolution.Notes,
		CreatedAt:      resolution.CreatedAt,
	}
}

// ToConflictDTO converts a Conflict model to ConflictDTO
func ToConflictDTO(conflict models.Conflict) ConflictDTO {
	dto := ConflictDTO{
		ID:         conflict.ID,
		ProjectID:  conflict.ProjectID,
		ReporterID: conflict.ReporterID,
		Reason:     conflict.Reason,
		Status:     conflict.Status,
		CreatedAt:  conflict.CreatedAt,
		UpdatedAt:  conflict.UpdatedAt,

		DismissedByID: conflict.DismissedByID,
		DismissReason: conflict.DismissReason,
	}

	if len(conflict.Comments) > 0 {
		dto.CommentIDs = make([]uint64, len(conflict.Comments))
		dto.Comments = make([]CommentDTO, len(conflict.Comments))
		for i, comment := range conflict.Comments {
			dto.CommentIDs[i] = comment.ID
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}

	if conflict.Resolution != nil {
		resolution := ToResolutionDTO(*conflict.Resolution)
		dto.Resolution = &resolution
	}

	return dto
}
