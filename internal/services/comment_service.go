package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"gorm.io/gorm"
)

// CommentService handles threaded, feeling-tagged commentary anchored to a
// specific track version.
type CommentService struct {
	commentRepo repository.CommentRepository
	trackRepo   repository.TrackRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, trackRepo repository.TrackRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		trackRepo:   trackRepo,
	}
}

// AddCommentInput represents parameters to add a comment.
type AddCommentInput struct {
	ProjectID        uint64
	TrackVersionID   uint64
	AuthorID         uint64
	TimestampSeconds float64
	Content          string
	Feeling          models.CommentFeelingTag
	ParentCommentID  *uint64
}

// AddComment creates a comment at a playback position on a version. The
// timestamp is range-checked against the version's duration when the
// duration is known; fresh uploads pending analysis accept any non-negative
// position. A reply's parent must be a comment on the same version.
func (s *CommentService) AddComment(input AddCommentInput) (*models.TrackComment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.Validation("content", "comment content cannot be empty")
	}
	if input.TimestampSeconds < 0 {
		return nil, apperrors.Validation("timestamp_seconds", "timestamp cannot be negative")
	}
	if input.Feeling != "" && !input.Feeling.IsValid() {
		return nil, apperrors.Validation("feeling", "unknown feeling tag")
	}

	version, err := s.findProjectVersion(input.ProjectID, input.TrackVersionID)
	if err != nil {
		return nil, err
	}

	if version.DurationSeconds != nil && input.TimestampSeconds > *version.DurationSeconds {
		return nil, apperrors.Validation("timestamp_seconds", "timestamp is past the end of the track")
	}

	if input.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(*input.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Validation("parent_comment_id", "parent comment does not exist")
			}
			return nil, fmt.Errorf("failed to find parent comment: %w", err)
		}
		if parent.TrackVersionID != version.ID {
			return nil, apperrors.Validation("parent_comment_id", "parent comment is on a different track version")
		}
	}

	comment := &models.TrackComment{
		TrackVersionID:   version.ID,
		AuthorID:         input.AuthorID,
		ParentCommentID:  input.ParentCommentID,
		TimestampSeconds: input.TimestampSeconds,
		Content:          input.Content,
		Feeling:          input.Feeling,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListComments returns the version's comments as a forest: top-level
// comments ordered by playback timestamp (creation order on ties), each
// carrying its replies in chronological order. Replies are discussion, not
// playback-anchored, so they keep creation order.
func (s *CommentService) ListComments(projectID, trackVersionID uint64) ([]models.TrackComment, error) {
	if _, err := s.findProjectVersion(projectID, trackVersionID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByVersion(trackVersionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	// Arena of comments with children resolved through a parent-id index,
	// never back-pointers. The repository returns creation order, so each
	// children slice is already chronological.
	children := make(map[uint64][]*models.TrackComment, len(comments))
	for i := range comments {
		c := &comments[i]
		if c.ParentCommentID != nil {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
		}
	}

	var build func(c *models.TrackComment) models.TrackComment
	build = func(c *models.TrackComment) models.TrackComment {
		node := *c
		node.Replies = nil
		for _, child := range children[c.ID] {
			node.Replies = append(node.Replies, build(child))
		}
		return node
	}

	roots := make([]models.TrackComment, 0, len(comments))
	for i := range comments {
		if comments[i].ParentCommentID == nil {
			roots = append(roots, build(&comments[i]))
		}
	}

	// Input is already in creation order, so a stable sort keeps ties
	// ordered by creation.
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].TimestampSeconds < roots[j].TimestampSeconds
	})

	return roots, nil
}

// findProjectVersion loads a version and verifies it belongs to the given
// project. Versions in other projects look like they do not exist.
func (s *CommentService) findProjectVersion(projectID, trackVersionID uint64) (*models.TrackVersion, error) {
	version, err := s.trackRepo.FindVersionByID(trackVersionID, "Track")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("track version not found")
		}
		return nil, fmt.Errorf("failed to find version: %w", err)
	}
	if version.Track.ProjectID != projectID {
		return nil, apperrors.NotFound("track version not found in this project")
	}
	return version, nil
}
