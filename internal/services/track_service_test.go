package services

import (
	"sync"
	"testing"
	"time"

	apperrors "github.com/ekastn/mamc-sub001/internal/errors"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type trackTestEnv struct {
	db      *gorm.DB
	service *TrackService
	user    *models.User
	project *models.Project
}

func setupTrackTestEnv(t *testing.T) trackTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectCollaborator{},
		&models.Track{},
		&models.TrackVersion{},
	)
	require.NoError(t, err)

	// The in-memory database exists per connection, so the pool must stay
	// at a single one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	user := &models.User{Username: "uploader", DisplayName: "Uploader", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	project := &models.Project{Name: "Demo Sessions", OwnerID: user.ID, InviteCode: "DEMO-CODE-0001"}
	require.NoError(t, db.Create(project).Error)
	require.NoError(t, db.Create(&models.ProjectCollaborator{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.RoleOwner,
		JoinedAt:  time.Now(),
	}).Error)

	return trackTestEnv{
		db:      db,
		service: NewTrackService(repository.NewTrackRepository(db)),
		user:    user,
		project: project,
	}
}

func (env trackTestEnv) createTrack(t *testing.T, name string) *models.Track {
	t.Helper()
	track, err := env.service.CreateTrack(CreateTrackInput{
		ProjectID: env.project.ID,
		Name:      name,
	})
	require.NoError(t, err)
	return track
}

func TestTrackService_CreateTrack_Validation(t *testing.T) {
	env := setupTrackTestEnv(t)

	_, err := env.service.CreateTrack(CreateTrackInput{ProjectID: env.project.ID, Name: "   "})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindValidation, domainErr.Kind)

	env.createTrack(t, "Main Track")

	// Names are unique per project, case-insensitively.
	_, err = env.service.CreateTrack(CreateTrackInput{ProjectID: env.project.ID, Name: "main track"})
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindValidation, domainErr.Kind)
	require.Equal(t, "name", domainErr.Field)
}

func TestTrackService_UploadVersion_Numbering(t *testing.T) {
	env := setupTrackTestEnv(t)
	track := env.createTrack(t, "Main Track")

	for i := 1; i <= 3; i++ {
		version, err := env.service.UploadVersion(UploadVersionInput{
			ProjectID: env.project.ID,
			TrackID:   track.ID,
			FileRef:   "uploads/take.wav",
			AuthorID:  env.user.ID,
		})
		require.NoError(t, err)
		require.Equal(t, i, version.VersionNumber)
	}

	versions, err := env.service.ListVersions(env.project.ID, track.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	for i, v := range versions {
		require.Equal(t, i+1, v.VersionNumber)
	}

	// Uploading always moves the current pointer to the new version.
	current, err := env.service.GetCurrentVersion(track.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	require.Equal(t, 3, current.VersionNumber)
}

func TestTrackService_UploadVersion_UnknownTrack(t *testing.T) {
	env := setupTrackTestEnv(t)

	_, err := env.service.UploadVersion(UploadVersionInput{
		ProjectID: env.project.ID,
		TrackID:   9999,
		FileRef:   "uploads/take.wav",
		AuthorID:  env.user.ID,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindNotFound, domainErr.Kind)
}

func TestTrackService_UploadVersion_Concurrent(t *testing.T) {
	env := setupTrackTestEnv(t)
	track := env.createTrack(t, "Main Track")

	const uploads = 8
	var wg sync.WaitGroup
	errs := make([]error, uploads)
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.UploadVersion(UploadVersionInput{
				ProjectID: env.project.ID,
				TrackID:   track.ID,
				FileRef:   "uploads/take.wav",
				AuthorID:  env.user.ID,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Every upload got its own number and the history is contiguous from 1.
	versions, err := env.service.ListVersions(env.project.ID, track.ID)
	require.NoError(t, err)
	require.Len(t, versions, uploads)
	seen := make(map[int]bool, uploads)
	for _, v := range versions {
		require.False(t, seen[v.VersionNumber])
		seen[v.VersionNumber] = true
	}
	for i := 1; i <= uploads; i++ {
		require.True(t, seen[i], "missing version number %d", i)
	}
}

func TestTrackService_UploadVersionForNewTrack(t *testing.T) {
	env := setupTrackTestEnv(t)

	track, version, err := env.service.UploadVersionForNewTrack(
		CreateTrackInput{ProjectID: env.project.ID, Name: "Fresh Track"},
		UploadVersionInput{FileRef: "uploads/fresh.wav", AuthorID: env.user.ID},
	)
	require.NoError(t, err)
	require.Equal(t, 1, version.VersionNumber)
	require.Equal(t, track.ID, version.TrackID)

	current, err := env.service.GetCurrentVersion(track.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	require.Equal(t, version.ID, current.ID)
}

func TestTrackService_SetCurrentVersion_Rollback(t *testing.T) {
	env := setupTrackTestEnv(t)
	track := env.createTrack(t, "Main Track")

	var first *models.TrackVersion
	for i := 0; i < 3; i++ {
		version, err := env.service.UploadVersion(UploadVersionInput{
			ProjectID: env.project.ID,
			TrackID:   track.ID,
			FileRef:   "uploads/take.wav",
			AuthorID:  env.user.ID,
		})
		require.NoError(t, err)
		if first == nil {
			first = version
		}
	}

	require.NoError(t, env.service.SetCurrentVersion(env.project.ID, track.ID, first.ID))

	// The pointer moved back, the history did not shrink.
	current, err := env.service.GetCurrentVersion(track.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, current.ID)

	versions, err := env.service.ListVersions(env.project.ID, track.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
}

func TestTrackService_SetCurrentVersion_WrongTrack(t *testing.T) {
	env := setupTrackTestEnv(t)
	trackA := env.createTrack(t, "Track A")
	trackB := env.createTrack(t, "Track B")

	version, err := env.service.UploadVersion(UploadVersionInput{
		ProjectID: env.project.ID,
		TrackID:   trackA.ID,
		FileRef:   "uploads/a.wav",
		AuthorID:  env.user.ID,
	})
	require.NoError(t, err)

	err = env.service.SetCurrentVersion(env.project.ID, trackB.ID, version.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.KindNotFound, domainErr.Kind)
}

func TestTrackService_GetCurrentVersion_NoVersions(t *testing.T) {
	env := setupTrackTestEnv(t)
	track := env.createTrack(t, "Silent Track")

	current, err := env.service.GetCurrentVersion(track.ID)
	require.NoError(t, err)
	require.Nil(t, current)
}
