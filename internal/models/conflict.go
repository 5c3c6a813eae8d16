package models

import "time"

type ConflictStatus string

const (
	ConflictOpen      ConflictStatus = "OPEN"
	ConflictEscalated ConflictStatus = "ESCALATED"
	ConflictResolved  ConflictStatus = "RESOLVED"
	ConflictDismissed ConflictStatus = "DISMISSED"
)

// Terminal reports whether the status permits no further transitions.
func (s ConflictStatus) Terminal() bool {
	return s == ConflictResolved || s == ConflictDismissed
}

// Conflict is a moderation case over one or more comments. It binds to the
// specific comments (and through them specific versions), not to the
// track's current-version pointer, so rollbacks and new uploads leave open
// conflicts untouched. Terminal conflicts are kept for audit, never
// deleted.
type Conflict struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	ProjectID  uint64         `gorm:"not null;index" json:"project_id"`
	ReporterID uint64         `gorm:"not null" json:"reporter_id"`
	Reason     string         `gorm:"type:text" json:"reason"`
	Status     ConflictStatus `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Set only when the conflict is DISMISSED, for the audit trail.
	DismissedByID *uint64 `json:"dismissed_by_id,omitempty"`
	DismissReason string  `gorm:"type:text" json:"dismiss_reason,omitempty"`

	// Relations
	Project    Project             `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reporter   User                `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Comments   []TrackComment      `gorm:"many2many:conflict_comments" json:"comments,omitempty"`
	Resolution *ConflictResolution `gorm:"foreignKey:ConflictID" json:"resolution,omitempty"`
}
