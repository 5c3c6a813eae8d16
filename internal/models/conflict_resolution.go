package models

import "time"

type ResolutionType string

const (
	ResolutionMutualAgreement   ResolutionType = "MUTUAL_AGREEMENT"
	ResolutionMediated          ResolutionType = "MEDIATED_RESOLUTION"
	ResolutionPolicyEnforcement ResolutionType = "POLICY_ENFORCEMENT"
	ResolutionNoActionNeeded    ResolutionType = "NO_ACTION_NEEDED"
)

func (t ResolutionType) IsValid() bool {
	switch t {
	case ResolutionMutualAgreement, ResolutionMediated,
		ResolutionPolicyEnforcement, ResolutionNoActionNeeded:
		return true
	}
	return false
}

// ConflictResolution is written exactly once, when its conflict moves to
// RESOLVED. The unique index on ConflictID keeps the relation 1:1.
type ConflictResolution struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	ConflictID     uint64         `gorm:"not null;uniqueIndex" json:"conflict_id"`
	ModeratorID    uint64         `gorm:"not null" json:"moderator_id"`
	ResolutionType ResolutionType `gorm:"type:varchar(30);not null" json:"resolution_type"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`

	// Relations
	Conflict  Conflict `gorm:"foreignKey:ConflictID" json:"conflict,omitempty"`
	Moderator User     `gorm:"foreignKey:ModeratorID" json:"moderator,omitempty"`
}
