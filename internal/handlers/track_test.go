package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ekastn/mamc-sub001/internal/constants"
	"github.com/ekastn/mamc-sub001/internal/database"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/ekastn/mamc-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TrackHandlerTestSuite defines the test suite for TrackHandler
type TrackHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TrackHandler
}

// SetupTest runs before each test
func (suite *TrackHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectCollaborator{},
		&models.Track{},
		&models.TrackVersion{},
	)
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	trackService := services.NewTrackService(repository.NewTrackRepository(suite.db))
	suite.handler = NewTrackHandler(trackService, services.NewUploadService())

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TrackHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TrackHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TrackHandlerTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project := &models.Project{
		Name:       name,
		OwnerID:    ownerID,
		InviteCode: name + "_CODE",
	}
	suite.db.Create(project)
	suite.db.Create(&models.ProjectCollaborator{
		ProjectID: project.ID,
		UserID:    ownerID,
		Role:      models.RoleOwner,
		JoinedAt:  time.Now(),
	})
	return project
}

func (suite *TrackHandlerTestSuite) createTestTrack(name string, projectID uint64) *models.Track {
	track := &models.Track{
		ProjectID: projectID,
		Name:      name,
	}
	suite.db.Create(track)
	return track
}

// Helper function to create an authenticated context with project access
func (suite *TrackHandlerTestSuite) createProjectContext(method, url string, body []byte, user *models.User, project *models.Project) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyProject, *project)
	c.Set(constants.ContextKeyCollaborator, models.ProjectCollaborator{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.RoleOwner,
	})

	return c, w
}

// TestCreateTrack_Success tests successful track creation
func (suite *TrackHandlerTestSuite) TestCreateTrack_Success() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)

	body, _ := json.Marshal(map[string]interface{}{"name": "Main Track"})
	c, w := suite.createProjectContext("POST", "/api/projects/1/tracks", body, user, project)

	suite.handler.CreateTrack(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Main Track", response["name"])
	assert.Nil(suite.T(), response["current_version_id"])
}

// TestCreateTrack_DuplicateName tests name uniqueness within a project
func (suite *TrackHandlerTestSuite) TestCreateTrack_DuplicateName() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)
	suite.createTestTrack("Main Track", project.ID)

	body, _ := json.Marshal(map[string]interface{}{"name": "MAIN TRACK"})
	c, w := suite.createProjectContext("POST", "/api/projects/1/tracks", body, user, project)

	suite.handler.CreateTrack(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUploadVersion_Success tests appending a version to a track
func (suite *TrackHandlerTestSuite) TestUploadVersion_Success() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)
	track := suite.createTestTrack("Main Track", project.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"file_name":    "take1.wav",
		"content_type": "audio/wav",
		"change_notes": []string{"Initial upload"},
	})
	url := fmt.Sprintf("/api/projects/%d/tracks/%d/versions", project.ID, track.ID)
	c, w := suite.createProjectContext("POST", url, body, user, project)
	c.Params = gin.Params{{Key: "track_id", Value: fmt.Sprint(track.ID)}}

	suite.handler.UploadVersion(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, response["version_number"])

	// The track now points at the new version
	var reloaded models.Track
	suite.db.First(&reloaded, track.ID)
	assert.NotNil(suite.T(), reloaded.CurrentVersionID)
}

// TestUploadVersion_UnsupportedContentType tests upload content type checks
func (suite *TrackHandlerTestSuite) TestUploadVersion_UnsupportedContentType() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)
	track := suite.createTestTrack("Main Track", project.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"file_name":    "notes.pdf",
		"content_type": "application/pdf",
	})
	url := fmt.Sprintf("/api/projects/%d/tracks/%d/versions", project.ID, track.ID)
	c, w := suite.createProjectContext("POST", url, body, user, project)
	c.Params = gin.Params{{Key: "track_id", Value: fmt.Sprint(track.ID)}}

	suite.handler.UploadVersion(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUploadVersion_UnknownTrack tests uploading to a missing track
func (suite *TrackHandlerTestSuite) TestUploadVersion_UnknownTrack() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"file_name":    "take1.wav",
		"content_type": "audio/wav",
	})
	c, w := suite.createProjectContext("POST", "/api/projects/1/tracks/999/versions", body, user, project)
	c.Params = gin.Params{{Key: "track_id", Value: "999"}}

	suite.handler.UploadVersion(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSetCurrentVersion_Rollback tests repointing the current version
func (suite *TrackHandlerTestSuite) TestSetCurrentVersion_Rollback() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)
	track := suite.createTestTrack("Main Track", project.ID)

	trackService := services.NewTrackService(repository.NewTrackRepository(suite.db))
	var versions []*models.TrackVersion
	for i := 0; i < 2; i++ {
		version, err := trackService.UploadVersion(services.UploadVersionInput{
			ProjectID: project.ID,
			TrackID:   track.ID,
			FileRef:   "uploads/take.wav",
			AuthorID:  user.ID,
		})
		suite.Require().NoError(err)
		versions = append(versions, version)
	}

	body, _ := json.Marshal(map[string]interface{}{"version_id": versions[0].ID})
	url := fmt.Sprintf("/api/projects/%d/tracks/%d/current-version", project.ID, track.ID)
	c, w := suite.createProjectContext("PUT", url, body, user, project)
	c.Params = gin.Params{{Key: "track_id", Value: fmt.Sprint(track.ID)}}

	suite.handler.SetCurrentVersion(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var reloaded models.Track
	suite.db.First(&reloaded, track.ID)
	suite.Require().NotNil(reloaded.CurrentVersionID)
	assert.Equal(suite.T(), versions[0].ID, *reloaded.CurrentVersionID)

	// History is untouched by the rollback
	var count int64
	suite.db.Model(&models.TrackVersion{}).Where("track_id = ?", track.ID).Count(&count)
	assert.EqualValues(suite.T(), 2, count)
}

// TestListVersions_Order tests that history comes back oldest first
func (suite *TrackHandlerTestSuite) TestListVersions_Order() {
	user := suite.createTestUser("owner")
	project := suite.createTestProject("Album", user.ID)
	track := suite.createTestTrack("Main Track", project.ID)

	trackService := services.NewTrackService(repository.NewTrackRepository(suite.db))
	for i := 0; i < 3; i++ {
		_, err := trackService.UploadVersion(services.UploadVersionInput{
			ProjectID: project.ID,
			TrackID:   track.ID,
			FileRef:   "uploads/take.wav",
			AuthorID:  user.ID,
		})
		suite.Require().NoError(err)
	}

	url := fmt.Sprintf("/api/projects/%d/tracks/%d/versions", project.ID, track.ID)
	c, w := suite.createProjectContext("GET", url, nil, user, project)
	c.Params = gin.Params{{Key: "track_id", Value: fmt.Sprint(track.ID)}}

	suite.handler.ListVersions(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	versions := response["versions"].([]interface{})
	suite.Require().Len(versions, 3)
	for i, v := range versions {
		version := v.(map[string]interface{})
		assert.EqualValues(suite.T(), i+1, version["version_number"])
	}
}

// TestTrackHandlerTestSuite runs the test suite
func TestTrackHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackHandlerTestSuite))
}
