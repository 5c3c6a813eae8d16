package models

import (
	"time"

	"gorm.io/gorm"
)

type CommentFeelingTag string

const (
	FeelingExcited      CommentFeelingTag = "EXCITED"
	FeelingInspired     CommentFeelingTag = "INSPIRED"
	FeelingImpressed    CommentFeelingTag = "IMPRESSED"
	FeelingEnergized    CommentFeelingTag = "ENERGIZED"
	FeelingSatisfied    CommentFeelingTag = "SATISFIED"
	FeelingCurious      CommentFeelingTag = "CURIOUS"
	FeelingThoughtful   CommentFeelingTag = "THOUGHTFUL"
	FeelingSurprised    CommentFeelingTag = "SURPRISED"
	FeelingNeutral      CommentFeelingTag = "NEUTRAL"
	FeelingNostalgic    CommentFeelingTag = "NOSTALGIC"
	FeelingConfused     CommentFeelingTag = "CONFUSED"
	FeelingConcerned    CommentFeelingTag = "CONCERNED"
	FeelingUnderwhelmed CommentFeelingTag = "UNDERWHELMED"
	FeelingFrustrated   CommentFeelingTag = "FRUSTRATED"
	FeelingDisappointed CommentFeelingTag = "DISAPPOINTED"
)

// AllFeelingTags lists every accepted feeling tag, positive to negative.
var AllFeelingTags = []CommentFeelingTag{
	FeelingExcited, FeelingInspired, FeelingImpressed, FeelingEnergized,
	FeelingSatisfied, FeelingCurious, FeelingThoughtful, FeelingSurprised,
	FeelingNeutral, FeelingNostalgic, FeelingConfused, FeelingConcerned,
	FeelingUnderwhelmed, FeelingFrustrated, FeelingDisappointed,
}

func (f CommentFeelingTag) IsValid() bool {
	for _, tag := range AllFeelingTags {
		if f == tag {
			return true
		}
	}
	return false
}

// TrackComment is anchored to a playback position on one TrackVersion.
// Replies reference their parent by id; parents always live on the same
// version, so a reply chain can never cross versions and, because a parent
// must exist before its children, the reply graph is acyclic.
type TrackComment struct {
	ID               uint64            `gorm:"primarykey" json:"id"`
	TrackVersionID   uint64            `gorm:"not null;index" json:"track_version_id"`
	AuthorID         uint64            `gorm:"not null" json:"author_id"`
	ParentCommentID  *uint64           `gorm:"index" json:"parent_comment_id"`
	TimestampSeconds float64           `gorm:"not null" json:"timestamp_seconds"`
	Content          string            `gorm:"type:text;not null" json:"content"`
	Feeling          CommentFeelingTag `gorm:"type:varchar(20)" json:"feeling,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	TrackVersion TrackVersion   `gorm:"foreignKey:TrackVersionID" json:"track_version,omitempty"`
	Author       User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Replies      []TrackComment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`
}
