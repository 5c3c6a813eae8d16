package models

import "time"

// TrackVersion is append-only: rows are inserted once and never updated.
// The unique index on (track_id, version_number) is what keeps concurrent
// uploads from claiming the same number; the repository retries on
// collision.
type TrackVersion struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	TrackID         uint64    `gorm:"not null;uniqueIndex:uq_track_versions_number,priority:1" json:"track_id"`
	VersionNumber   int       `gorm:"not null;uniqueIndex:uq_track_versions_number,priority:2" json:"version_number"`
	FileRef         string    `gorm:"type:varchar(512);not null" json:"file_ref"`
	AuthorID        uint64    `gorm:"not null;index" json:"author_id"`
	DurationSeconds *float64  `json:"duration_seconds"`
	ChangeNotes     []string  `gorm:"serializer:json;type:text" json:"change_notes"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Track    Track          `gorm:"foreignKey:TrackID" json:"track,omitempty"`
	Author   User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []TrackComment `gorm:"foreignKey:TrackVersionID" json:"comments,omitempty"`
}
