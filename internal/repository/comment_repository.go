package repository

import (
	"github.com/ekastn/mamc-sub001/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.TrackComment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.TrackComment, error) {
	var comment models.TrackComment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// FindByIDs finds comments by their IDs with the owning track loaded so
// callers can verify project membership.
func (r *GormCommentRepository) FindByIDs(ids []uint64) ([]models.TrackComment, error) {
	var comments []models.TrackComment
	if err := r.db.Preload("TrackVersion").Preload("TrackVersion.Track").
		Where("id IN ?", ids).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByVersion lists all comments on a version in creation order. The
// service layer assembles the reply forest from parent ids.
func (r *GormCommentRepository) ListByVersion(versionID uint64) ([]models.TrackComment, error) {
	var comments []models.TrackComment
	if err := r.db.Preload("Author").
		Where("track_version_id = ?", versionID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
