package services

import (
	"fmt"
	"path"
	"strings"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/google/uuid"
)

// UploadService is the boundary to file storage. The core never inspects
// audio bytes; it only mints an opaque fileRef that versions store
// verbatim.
type UploadService struct {
	prefix string
}

// NewUploadService creates a new UploadService.
func NewUploadService() *UploadService {
	return &UploadService{prefix: "uploads"}
}

var allowedContentTypes = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/flac":  ".flac",
	"audio/ogg":   ".ogg",
	"audio/aac":   ".aac",
}

// StoreFile registers an upload and returns its opaque reference.
func (s *UploadService) StoreFile(fileName, contentType string) (string, error) {
	ext, ok := allowedContentTypes[strings.ToLower(contentType)]
	if !ok {
		return "", apperrors.Validation("content_type", "unsupported audio content type")
	}

	if fileName != "" {
		if orig := path.Ext(fileName); orig != "" {
			ext = strings.ToLower(orig)
		}
	}

	return fmt.Sprintf("%s/%s%s", s.prefix, uuid.NewString(), ext), nil
}
