package models

import "time"

// Checkpoint is a named snapshot of each track's current version at
// creation time. Neither the checkpoint nor its entries are ever updated;
// new snapshots get new checkpoints.
type Checkpoint struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ProjectID   uint64    `gorm:"not null;index" json:"project_id"`
	CreatorID   uint64    `gorm:"not null" json:"creator_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Project Project                  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator User                     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Entries []CheckpointTrackVersion `gorm:"foreignKey:CheckpointID" json:"entries,omitempty"`
}

// CheckpointTrackVersion pins one version per track. The composite primary
// key makes a second pin for the same track within a checkpoint impossible.
type CheckpointTrackVersion struct {
	CheckpointID   uint64    `gorm:"primarykey" json:"checkpoint_id"`
	TrackID        uint64    `gorm:"primarykey" json:"track_id"`
	TrackVersionID uint64    `gorm:"not null" json:"track_version_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Checkpoint   Checkpoint   `gorm:"foreignKey:CheckpointID" json:"checkpoint,omitempty"`
	Track        Track        `gorm:"foreignKey:TrackID" json:"track,omitempty"`
	TrackVersion TrackVersion `gorm:"foreignKey:TrackVersionID" json:"track_version,omitempty"`
}
