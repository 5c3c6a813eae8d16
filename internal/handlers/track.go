package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekastn/mamc-sub001/internal/dto"
	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/middleware"
	"github.com/ekastn/mamc-sub001/internal/services"
)

// TrackHandler coordinates track and version HTTP handlers.
type TrackHandler struct {
	trackService  *services.TrackService
	uploadService *services.UploadService
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(trackService *services.TrackService, uploadService *services.UploadService) *TrackHandler {
	return &TrackHandler{
		trackService:  trackService,
		uploadService: uploadService,
	}
}

// uploadRequest is shared by version uploads on existing and new tracks.
type uploadRequest struct {
	FileName        string   `json:"file_name"`
	ContentType     string   `json:"content_type" binding:"required"`
	DurationSeconds *float64 `json:"duration_seconds"`
	ChangeNotes     []string `json:"change_notes"`
}

// CreateTrack creates an empty track in the project.
func (h *TrackHandler) CreateTrack(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateTrackRequest struct {
		Name       string `json:"name" binding:"required"`
		TrackOrder *int   `json:"track_order"`
	}

	var req CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	track, err := h.trackService.CreateTrack(services.CreateTrackInput{
		ProjectID:  project.ID,
		Name:       req.Name,
		TrackOrder: req.TrackOrder,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTrackDTO(*track))
}

// ListTracks lists the project's tracks.
func (h *TrackHandler) ListTracks(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	tracks, err := h.trackService.ListTracks(project.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	trackDTOs := make([]dto.TrackDTO, len(tracks))
	for i, track := range tracks {
		trackDTOs[i] = dto.ToTrackDTO(track)
	}

	c.JSON(http.StatusOK, gin.H{"tracks": trackDTOs})
}

// GetTrack returns a track with its version history.
func (h *TrackHandler) GetTrack(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	trackID, err := strconv.ParseUint(c.Param("track_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid track ID")
		return
	}

	track, err := h.trackService.GetTrack(project.ID, trackID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrackDTO(*track))
}

// UploadVersion appends a new version to an existing track.
func (h *TrackHandler) UploadVersion(c *gin.Context) {
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

	trackID, err := strconv.ParseUint(c.Param("track_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid track ID")
		return
	}

	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	fileRef, err := h.uploadService.StoreFile(req.FileName, req.ContentType)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	version, err := h.trackService.UploadVersion(services.UploadVersionInput{
		ProjectID:       project.ID,
		TrackID:         trackID,
		FileRef:         fileRef,
		AuthorID:        userID,
		DurationSeconds: req.DurationSeconds,
		ChangeNotes:     req.ChangeNotes,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTrackVersionDTO(*version))
}

// UploadVersionForNewTrack creates a track and its first version in one call.
func (h *TrackHandler) UploadVersionForNewTrack(c *gin.Context) {
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

	type NewTrackUploadRequest struct {
		Name       string `json:"name" binding:"required"`
		TrackOrder *int   `json:"track_order"`
		uploadRequest
	}

	var req NewTrackUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	fileRef, err := h.uploadService.StoreFile(req.FileName, req.ContentType)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	track, version, err := h.trackService.UploadVersionForNewTrack(
		services.CreateTrackInput{
			ProjectID:  project.ID,
			Name:       req.Name,
			TrackOrder: req.TrackOrder,
		},
		services.UploadVersionInput{
			FileRef:         fileRef,
			AuthorID:        userID,
			DurationSeconds: req.DurationSeconds,
			ChangeNotes:     req.ChangeNotes,
		},
	)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"track":   dto.ToTrackDTO(*track),
		"version": dto.ToTrackVersionDTO(*version),
	})
}

// SetCurrentVersion repoints the track's current version (rollback).
func (h *TrackHandler) SetCurrentVersion(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	trackID, err := strconv.ParseUint(c.Param("track_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid track ID")
		return
	}

	type SetCurrentVersionRequest struct {
		VersionID uint64 `json:"version_id" binding:"required"`
	}

	var req SetCurrentVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.trackService.SetCurrentVersion(project.ID, trackID, req.VersionID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Current version updated"})
}

// ListVersions lists a track's full version history.
func (h *TrackHandler) ListVersions(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apperrors.InternalError(c, "Project not found in context")
		return
	}

	trackID, err := strconv.ParseUint(c.Param("track_id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid track ID")
		return
	}

	versions, err := h.trackService.ListVersions(project.ID, trackID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	versionDTOs := make([]dto.TrackVersionDTO, len(versions))
	for i, version := range versions {
		versionDTOs[i] = dto.ToTrackVersionDTO(version)
	}

	c.JSON(http.StatusOK, gin.H{"versions": versionDTOs})
}
