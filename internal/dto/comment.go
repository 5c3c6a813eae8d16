package dto

import (
	"time"

	"github.com/ekastn/mamc-sub001/internal/models"
)

// CommentDTO represents one node of the comment forest in API responses.
// Replies are nested, chronological.
type CommentDTO struct {
	ID               uint64                   `json:"id"`
	TrackVersionID   uint64                   `json:"track_version_id"`
	AuthorID         uint64                   `json:"author_id"`
	Author           *UserDTO                 `json:"author,omitempty"`
	ParentCommentID  *uint64                  `json:"parent_comment_id"`
	TimestampSeconds float64                  `json:"timestamp_seconds"`
	Content          string                   `json:"content"`
	Feeling          models.CommentFeelingTag `json:"feeling,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	Replies          []CommentDTO             `json:"replies,omitempty"`
}

// ToCommentDTO converts a TrackComment (with nested replies) to CommentDTO
func ToCommentDTO(comment models.TrackComment) CommentDTO {
	dto := CommentDTO{
		ID:               comment.ID,
		TrackVersionID:   comment.TrackVersionID,
		AuthorID:         comment.AuthorID,
		ParentCommentID:  comment.ParentCommentID,
		TimestampSeconds: comment.TimestampSeconds,
		Content:          comment.Content,
		Feeling:          comment.Feeling,
		CreatedAt:        comment.CreatedAt,
	}

	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}

	if len(comment.Replies) > 0 {
		dto.Replies = make([]CommentDTO, len(comment.Replies))
		for i, reply := range comment.Replies {
			dto.Replies[i] = ToCommentDTO(reply)
		}
	}

	return dto
}

// ToCommentForest converts top-level comments with nested replies
func ToCommentForest(comments []models.TrackComment) []CommentDTO {
	forest := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		forest[i] = ToCommentDTO(comment)
	}
	return forest
}
