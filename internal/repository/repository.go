package repository

import (
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalProject creates a user, their personal project, and
	// the owner collaborator row within a single transaction.
	CreateWithPersonalProject(user *models.User, project *models.Project, collaborator *models.ProjectCollaborator) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByInviteCode finds a project by invite code
	FindByInviteCode(code string) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// AddCollaborator adds a collaborator to a project
	AddCollaborator(collaborator *models.ProjectCollaborator) error

	// RemoveCollaborator removes a collaborator from a project
	RemoveCollaborator(projectID, userID uint64) error

	// FindCollaborator finds a specific project collaborator
	FindCollaborator(projectID, userID uint64) (*models.ProjectCollaborator, error)

	// UpdateCollaboratorRole changes a collaborator's role
	UpdateCollaboratorRole(projectID, userID uint64, role models.CollaboratorRole) error

	// ListCollaborators lists all collaborators of a project
	ListCollaborators(projectID uint64) ([]models.ProjectCollaborator, error)

	// ListCollaborationsByUserID lists all projects a user collaborates on
	ListCollaborationsByUserID(userID uint64) ([]models.ProjectCollaborator, error)
}

// TrackRepository defines the interface for track and version data access.
// There is deliberately no update or delete for versions: the history is
// append-only and only the track's current-version pointer moves.
type TrackRepository interface {
	// Create creates a new track with no versions
	Create(track *models.Track) error

	// CreateWithFirstVersion creates a track and its version 1 atomically
	CreateWithFirstVersion(track *models.Track, version *models.TrackVersion) error

	// FindByID finds a track by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Track, error)

	// FindByProjectAndName finds a track by case-insensitive name
	FindByProjectAndName(projectID uint64, name string) (*models.Track, error)

	// ListByProject lists all tracks of a project
	ListByProject(projectID uint64) ([]models.Track, error)

	// CreateVersion assigns the next version number, inserts the version and
	// moves the track's current-version pointer, all in one transaction.
	// A numbering collision with a concurrent upload is retried.
	CreateVersion(version *models.TrackVersion) error

	// FindVersionByID finds a version by ID with optional preloading
	FindVersionByID(id uint64, preload ...string) (*models.TrackVersion, error)

	// ListVersions lists a track's versions ordered by version number
	ListVersions(trackID uint64) ([]models.TrackVersion, error)

	// SetCurrentVersion repoints the track at one of its versions
	SetCurrentVersion(trackID, versionID uint64) error
}

// CheckpointRepository defines the interface for checkpoint data access.
// Checkpoints are immutable: no update or delete methods exist.
type CheckpointRepository interface {
	// CreateFromCurrentVersions pins the project's current version per
	// track inside one transaction, so pointer moves racing the snapshot
	// are either fully seen or fully missed. ErrNothingToSnapshot is
	// returned when no track has a current version.
	CreateFromCurrentVersions(checkpoint *models.Checkpoint) error

	// FindByID finds a checkpoint with its entries
	FindByID(id uint64, preload ...string) (*models.Checkpoint, error)

	// ListByProject lists checkpoints newest first
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Checkpoint, int64, error)
}

// CommentRepository defines the interface for track comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.TrackComment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TrackComment, error)

	// FindByIDs finds comments by their IDs with track info loaded
	FindByIDs(ids []uint64) ([]models.TrackComment, error)

	// ListByVersion lists all comments on a version in creation order
	ListByVersion(versionID uint64) ([]models.TrackComment, error)
}

// ConflictRepository defines the interface for conflict data access
type ConflictRepository interface {
	// Create inserts the conflict and links its comment set atomically
	Create(conflict *models.Conflict, comments []models.TrackComment) error

	// FindByID finds a conflict by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Conflict, error)

	// ListByProject lists conflicts newest first
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Conflict, int64, error)

	// UpdateStatus conditionally moves the conflict from one of the given
	// statuses to the target status. ErrStatusChanged is returned when the
	// row no longer matches, meaning another moderator won the race.
	UpdateStatus(id uint64, from []models.ConflictStatus, to models.ConflictStatus) error

	// ResolveWithRecord moves the conflict to RESOLVED and writes its single
	// resolution row in one transaction, guarded like UpdateStatus.
	ResolveWithRecord(resolution *models.ConflictResolution, from []models.ConflictStatus) error

	// DismissWithReason moves the conflict to DISMISSED and records who
	// dismissed it and why, guarded like UpdateStatus.
	DismissWithReason(id uint64, from []models.ConflictStatus, moderatorID uint64, reason string) error
}
