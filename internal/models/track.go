package models

import (
	"time"

	"gorm.io/gorm"
)

// Track owns an append-only sequence of TrackVersions. CurrentVersionID is
// the one mutable pointer into that sequence; it is reassigned on upload and
// on rollback, never derived from the highest version number.
type Track struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	ProjectID        uint64         `gorm:"not null;index;uniqueIndex:uq_tracks_project_order,priority:1" json:"project_id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	TrackOrder       *int           `gorm:"uniqueIndex:uq_tracks_project_order,priority:2" json:"track_order"`
	CurrentVersionID *uint64        `json:"current_version_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project        Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Versions       []TrackVersion `gorm:"foreignKey:TrackID" json:"versions,omitempty"`
	CurrentVersion *TrackVersion  `gorm:"foreignKey:CurrentVersionID" json:"current_version,omitempty"`
}
