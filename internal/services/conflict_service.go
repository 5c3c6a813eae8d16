package services

import (
	"errors"
	"fmt"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/ekastn/mamc-sub001/internal/utils"
	"gorm.io/gorm"
)

// ConflictService drives the moderation lifecycle over flagged comments:
// OPEN, then optionally ESCALATED, then RESOLVED (with a record) or
// DISMISSED (without one). Terminal conflicts never change again.
type ConflictService struct {
	conflictRepo repository.ConflictRepository
	commentRepo  repository.CommentRepository
}

// NewConflictService creates a new ConflictService.
func NewConflictService(conflictRepo repository.ConflictRepository, commentRepo repository.CommentRepository) *ConflictService {
	return &ConflictService{
		conflictRepo: conflictRepo,
		commentRepo:  commentRepo,
	}
}

// FileConflictInput represents parameters to open a conflict.
type FileConflictInput struct {
	ProjectID  uint64
	ReporterID uint64
	CommentIDs []uint64
	Reason     string
}

// FileConflict opens a conflict over a non-empty set of comments, all of
// which must belong to tracks within the project.
func (s *ConflictService) FileConflict(input FileConflictInput) (*models.Conflict, error) {
	if len(input.CommentIDs) == 0 {
		return nil, apperrors.Validation("comment_ids", "at least one comment is required")
	}

	ids := uniqueUint64(input.CommentIDs)
	comments, err := s.commentRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if len(comments) != len(ids) {
		return nil, apperrors.NotFound("one or more comments do not exist")
	}
	for _, comment := range comments {
		if comment.TrackVersion.Track.ProjectID != input.ProjectID {
			return nil, apperrors.NotFound("one or more comments belong to a different project")
		}
	}

	conflict := &models.Conflict{
		ProjectID:  input.ProjectID,
		ReporterID: input.ReporterID,
		Reason:     input.Reason,
		Status:     models.ConflictOpen,
	}

	if err := s.conflictRepo.Create(conflict, comments); err != nil {
		return nil, fmt.Errorf("failed to create conflict: %w", err)
	}

	return conflict, nil
}

// Escalate moves an OPEN conflict to ESCALATED. Escalation is a discrete
// event, not idempotent: escalating anything but an OPEN conflict fails.
func (s *ConflictService) Escalate(projectID, conflictID uint64) (*models.Conflict, error) {
	conflict, err := s.getProjectConflict(projectID, conflictID)
	if err != nil {
		return nil, err
	}

	err = s.conflictRepo.UpdateStatus(conflict.ID,
		[]models.ConflictStatus{models.ConflictOpen}, models.ConflictEscalated)
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, apperrors.InvalidState("conflict can only be escalated from OPEN")
		}
		return nil, fmt.Errorf("failed to escalate conflict: %w", err)
	}

	conflict.Status = models.ConflictEscalated
	return conflict, nil
}

// ResolveInput represents parameters to resolve a conflict.
type ResolveInput struct {
	ProjectID      uint64
	ConflictID     uint64
	ModeratorID    uint64
	ResolutionType models.ResolutionType
	Notes          string
}

// Resolve closes an OPEN or ESCALATED conflict with exactly one immutable
// resolution record. The status write is conditional on the previous
// status, so of two racing moderators only one succeeds.
func (s *ConflictService) Resolve(input ResolveInput) (*models.ConflictResolution, error) {
	if !input.ResolutionType.IsValid() {
		return nil, apperrors.Validation("resolution_type",
			"resolution type must be one of MUTUAL_AGREEMENT, MEDIATED_RESOLUTION, POLICY_ENFORCEMENT, NO_ACTION_NEEDED")
	}

	conflict, err := s.getProjectConflict(input.ProjectID, input.ConflictID)
	if err != nil {
		return nil, err
	}

	resolution := &models.ConflictResolution{
		ConflictID:     conflict.ID,
		ModeratorID:    input.ModeratorID,
		ResolutionType: input.ResolutionType,
		Notes:          input.Notes,
	}

	err = s.conflictRepo.ResolveWithRecord(resolution,
		[]models.ConflictStatus{models.ConflictOpen, models.ConflictEscalated})
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, apperrors.InvalidState("conflict is already resolved or dismissed")
		}
		return nil, fmt.Errorf("failed to resolve conflict: %w", err)
	}

	return resolution, nil
}

// Dismiss closes an OPEN or ESCALATED conflict without a resolution
// record, keeping the dismissing moderator and reason for audit.
func (s *ConflictService) Dismiss(projectID, conflictID, moderatorID uint64, reason string) (*models.Conflict, error) {
	conflict, err := s.getProjectConflict(projectID, conflictID)
	if err != nil {
		return nil, err
	}

	err = s.conflictRepo.DismissWithReason(conflict.ID,
		[]models.ConflictStatus{models.ConflictOpen, models.ConflictEscalated},
		moderatorID, reason)
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, apperrors.InvalidState("conflict is already resolved or dismissed")
		}
		return nil, fmt.Errorf("failed to dismiss conflict: %w", err)
	}

	conflict.Status = models.ConflictDismissed
	conflict.DismissedByID = &moderatorID
	conflict.DismissReason = reason
	return conflict, nil
}

// GetConflict returns a conflict with its comments and resolution loaded.
func (s *ConflictService) GetConflict(projectID, conflictID uint64) (*models.Conflict, error) {
	conflict, err := s.conflictRepo.FindByID(conflictID, "Comments", "Resolution", "Reporter")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conflict not found")
		}
		return nil, fmt.Errorf("failed to find conflict: %w", err)
	}
	if conflict.ProjectID != projectID {
		return nil, apperrors.NotFound("conflict not found in this project")
	}

	return conflict, nil
}

// ListConflicts lists a project's conflicts, most recent first.
func (s *ConflictService) ListConflicts(projectID uint64, params utils.PaginationParams) ([]models.Conflict, int64, error) {
	conflicts, total, err := s.conflictRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conflicts: %w", err)
	}
	return conflicts, total, nil
}

func (s *ConflictService) getProjectConflict(projectID, conflictID uint64) (*models.Conflict, error) {
	conflict, err := s.conflictRepo.FindByID(conflictID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conflict not found")
		}
		return nil, fmt.Errorf("failed to find conflict: %w", err)
	}
	if conflict.ProjectID != projectID {
		return nil, apperrors.NotFound("conflict not found in this project")
	}
	return conflict, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
