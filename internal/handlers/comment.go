package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekastn/mamc-sub001/internal/constants"
	"github.com/ekastn/mamc-sub001/internal/dto"
	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/middleware"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/services"
)

// CommentHandler coordinates comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
	aiService      *services.AIService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, aiService *services.AIService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		aiService:      aiService,
	}
}

// AddComment creates a comment on a track version.
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	versionID, err := strconv.ParseUint(c.Param("version_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid version ID")
		return
	}

	type AddCommentRequest struct {
		TimestampSeconds *float64                 `json:"timestamp_seconds" binding:"required"`
		Content          string                   `json:"content" binding:"required"`
		Feeling          models.CommentFeelingTag `json:"feeling"`
		ParentCommentID  *uint64                  `json:"parent_comment_id"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(services.AddCommentInput{
		ProjectID:        project.ID,
		TrackVersionID:   versionID,
		AuthorID:         userID,
		TimestampSeconds: *req.TimestampSeconds,
		Content:          req.Content,
		Feeling:          req.Feeling,
		ParentCommentID:  req.ParentCommentID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns a version's comments as a forest.
func (h *CommentHandler) ListComments(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	versionID, err := strconv.ParseUint(c.Param("version_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid version ID")
		return
	}

	comments, err := h.commentService.ListComments(project.ID, versionID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentForest(comments)})
}

// SuggestFeeling proposes a feeling tag for a comment draft.
func (h *CommentHandler) SuggestFeeling(c *gin.Context) {
	type SuggestFeelingRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestFeelingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	if len(req.Text) > constants.MaxFeelingSuggestionChars {
		apperrors.BadRequest(c, "Text too long")
		return
	}

	if h.aiService == nil {
		apperrors.ServiceUnavailable(c, "Feeling suggestion is not configured")
		return
	}

	suggestion, err := h.aiService.SuggestFeelingFromText(context.Background(), req.Text)
	if err != nil {
		apperrors.InternalError(c, "Failed to suggest a feeling")
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
