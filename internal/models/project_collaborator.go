package models

import "time"

type CollaboratorRole string

const (
	RoleOwner     CollaboratorRole = "OWNER"
	RoleProducer  CollaboratorRole = "PRODUCER"
	RoleMixer     CollaboratorRole = "MIXER"
	RoleMember    CollaboratorRole = "MEMBER"
	RoleModerator CollaboratorRole = "MODERATOR"
)

// IsValid reports whether the role is one of the known collaborator roles.
func (r CollaboratorRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleProducer, RoleMixer, RoleMember, RoleModerator:
		return true
	}
	return false
}

// CanCreateCheckpoints reports whether the role may snapshot the project.
func (r CollaboratorRole) CanCreateCheckpoints() bool {
	switch r {
	case RoleOwner, RoleProducer, RoleMixer:
		return true
	}
	return false
}

// CanModerate reports whether the role may drive conflict transitions.
func (r CollaboratorRole) CanModerate() bool {
	return r == RoleOwner || r == RoleModerator
}

type ProjectCollaborator struct {
	ProjectID uint64           `gorm:"primarykey" json:"project_id"`
	UserID    uint64           `gorm:"primarykey" json:"user_id"`
	Role      CollaboratorRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time        `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
