package services

import (
	"testing"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type conflictTestEnv struct {
	db       *gorm.DB
	service  *ConflictService
	user     *models.User
	project  *models.Project
	comments []*models.TrackComment
}

func setupConflictTestEnv(t *testing.T) conflictTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Track{},
		&models.TrackVersion{},
		&models.TrackComment{},
		&models.Conflict{},
		&models.ConflictResolution{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	user := &models.User{Username: "moderator", DisplayName: "Moderator", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	project := &models.Project{Name: "Album", OwnerID: user.ID, InviteCode: "ALBM-CODE-0003"}
	require.NoError(t, db.Create(project).Error)

	trackRepo := repository.NewTrackRepository(db)
	trackService := NewTrackService(trackRepo)
	commentRepo := repository.NewCommentRepository(db)
	commentService := NewCommentService(commentRepo, trackRepo)

	_, version, err := trackService.UploadVersionForNewTrack(
		CreateTrackInput{ProjectID: project.ID, Name: "Main Track"},
		UploadVersionInput{FileRef: "uploads/v1.wav", AuthorID: user.ID},
	)
	require.NoError(t, err)

	comments := make([]*models.TrackComment, 0, 2)
	for _, content := range []string{"this mix buries the vocals", "no, the vocals are fine"} {
		comment, err := commentService.AddComment(AddCommentInput{
			ProjectID:        project.ID,
			TrackVersionID:   version.ID,
			AuthorID:         user.ID,
			TimestampSeconds: 60,
			Content:          content,
		})
		require.NoError(t, err)
		comments = append(comments, comment)
	}

	return conflictTestEnv{
		db:       db,
		service:  NewConflictService(repository.NewConflictRepository(db), commentRepo),
		user:     user,
		project:  project,
		comments: comments,
	}
}

func (env conflictTestEnv) fileConflict(t *testing.T) *models.Conflict {
	t.Helper()
	conflict, err := env.service.FileConflict(FileConflictInput{
		ProjectID:  env.project.ID,
		ReporterID: env.user.ID,
		CommentIDs: []uint64{env.comments[0].ID, env.comments[1].ID},
		Reason:     "disagreement over the mix is getting personal",
	})
	require.NoError(t, err)
	return conflict
}

func TestConflictService_FileConflict(t *testing.T) {
	env := setupConflictTestEnv(t)

	conflict := env.fileConflict(t)
	require.Equal(t, models.ConflictOpen, conflict.Status)

	loaded, err := env.service.GetConflict(env.project.ID, conflict.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 2)
	require.Nil(t, loaded.Resolution)
}

func TestConflictService_FileConflict_Validation(t *testing.T) {
	env := setupConflictTestEnv(t)

	var domainErr *apperrors.DomainError

	_, err := env.service.FileConflict(FileConflictInput{
		ProjectID:  env.project.ID,
		ReporterID: env.user.ID,
	})
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindValidation, domainErr.Kind)

	_, err = env.service.FileConflict(FileConflictInput{
		ProjectID:  env.project.ID,
		ReporterID: env.user.ID,
		CommentIDs: []uint64{env.comments[0].ID, 9999},
	})
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindNotFound, domainErr.Kind)
}

func TestConflictService_Escalate(t *testing.T) {
	env := setupConflictTestEnv(t)
	conflict := env.fileConflict(t)

	escalated, err := env.service.Escalate(env.project.ID, conflict.ID)
	require.NoError(t, err)
	require.Equal(t, models.ConflictEscalated, escalated.Status)

	// Escalation is a one-shot event, not idempotent.
	_, err = env.service.Escalate(env.project.ID, conflict.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindInvalidState, domainErr.Kind)
}

func TestConflictService_Resolve(t *testing.T) {
	env := setupConflictTestEnv(t)
	conflict := env.fileConflict(t)

	resolution, err := env.service.Resolve(ResolveInput{
		ProjectID:      env.project.ID,
		ConflictID:     conflict.ID,
		ModeratorID:    env.user.ID,
		ResolutionType: models.ResolutionMutualAgreement,
		Notes:          "both takes kept, revisit after the next mix pass",
	})
	require.NoError(t, err)
	require.Equal(t, conflict.ID, resolution.ConflictID)

	loaded, err := env.service.GetConflict(env.project.ID, conflict.ID)
	require.NoError(t, err)
	require.Equal(t, models.ConflictResolved, loaded.Status)
	require.NotNil(t, loaded.Resolution)

	// A resolved conflict never gains a second resolution.
	_, err = env.service.Resolve(ResolveInput{
		ProjectID:      env.project.ID,
		ConflictID:     conflict.ID,
		ModeratorID:    env.user.ID,
		ResolutionType: models.ResolutionNoActionNeeded,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindInvalidState, domainErr.Kind)

	var count int64
	require.NoError(t, env.db.Model(&models.ConflictResolution{}).
		Where("conflict_id = ?", conflict.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestConflictService_Resolve_InvalidType(t *testing.T) {
	env := setupConflictTestEnv(t)
	conflict := env.fileConflict(t)

	_, err := env.service.Resolve(ResolveInput{
		ProjectID:      env.project.ID,
		ConflictID:     conflict.ID,
		ModeratorID:    env.user.ID,
		ResolutionType: "HANDSHAKE",
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindValidation, domainErr.Kind)
}

func TestConflictService_Dismiss(t *testing.T) {
	env := setupConflictTestEnv(t)
	conflict := env.fileConflict(t)

	_, err := env.service.Escalate(env.project.ID, conflict.ID)
	require.NoError(t, err)

	dismissed, err := env.service.Dismiss(env.project.ID, conflict.ID, env.user.ID, "cooled off on its own")
	require.NoError(t, err)
	require.Equal(t, models.ConflictDismissed, dismissed.Status)

	// Dismissal leaves no resolution record, but the moderator and
	// reason are kept on the conflict row for audit.
	loaded, err := env.service.GetConflict(env.project.ID, conflict.ID)
	require.NoError(t, err)
	require.Nil(t, loaded.Resolution)
	require.NotNil(t, loaded.DismissedByID)
	require.Equal(t, env.user.ID, *loaded.DismissedByID)
	require.Equal(t, "cooled off on its own", loaded.DismissReason)

	// Terminal means terminal: no late resolution, status unchanged.
	_, err = env.service.Resolve(ResolveInput{
		ProjectID:      env.project.ID,
		ConflictID:     conflict.ID,
		ModeratorID:    env.user.ID,
		ResolutionType: models.ResolutionNoActionNeeded,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindInvalidState, domainErr.Kind)

	loaded, err = env.service.GetConflict(env.project.ID, conflict.ID)
	require.NoError(t, err)
	require.Equal(t, models.ConflictDismissed, loaded.Status)
}

func TestConflictService_GetConflict_WrongProject(t *testing.T) {
	env := setupConflictTestEnv(t)
	conflict := env.fileConflict(t)

	_, err := env.service.GetConflict(env.project.ID+1, conflict.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindNotFound, domainErr.Kind)
}
