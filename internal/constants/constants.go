package constants

// Session and context keys
const (
	SessionCookieName = "harmonic_session"
	ContextKeyUserID  = "user_id"

	ContextKeyProject      = "project"
	ContextKeyCollaborator = "project_collaborator"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// VersionUploadRetries is how many extra attempts a version insert gets
// when two uploads race for the same version number.
const VersionUploadRetries = 1

// MaxFeelingSuggestionChars caps the comment draft length sent to the
// feeling suggestion service.
const MaxFeelingSuggestionChars = 2000
