package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekastn/mamc-sub001/internal/constants"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// roleContext builds a context as RequireProjectAccess would leave it for a
// collaborator with the given role.
func roleContext(role models.CollaboratorRole) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/projects/1/checkpoints", nil)
	c.Set(constants.ContextKeyUserID, uint64(1))
	c.Set(constants.ContextKeyCollaborator, models.ProjectCollaborator{
		ProjectID: 1,
		UserID:    1,
		Role:      role,
	})
	return c, w
}

func runGate(gate gin.HandlerFunc, c *gin.Context) (passed bool) {
	gate(c)
	return !c.IsAborted()
}

func TestRequireCheckpointRole(t *testing.T) {
	cases := []struct {
		role    models.CollaboratorRole
		allowed bool
	}{
		{models.RoleOwner, true},
		{models.RoleProducer, true},
		{models.RoleMixer, true},
		{models.RoleMember, false},
		{models.RoleModerator, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			c, w := roleContext(tc.role)
			passed := runGate(RequireCheckpointRole(), c)
			require.Equal(t, tc.allowed, passed)
			if !tc.allowed {
				require.Equal(t, http.StatusForbidden, w.Code)
			}
		})
	}
}

func TestRequireModeratorRole(t *testing.T) {
	cases := []struct {
		role    models.CollaboratorRole
		allowed bool
	}{
		{models.RoleOwner, true},
		{models.RoleModerator, true},
		{models.RoleProducer, false},
		{models.RoleMixer, false},
		{models.RoleMember, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			c, w := roleContext(tc.role)
			passed := runGate(RequireModeratorRole(), c)
			require.Equal(t, tc.allowed, passed)
			if !tc.allowed {
				require.Equal(t, http.StatusForbidden, w.Code)
			}
		})
	}
}

func TestRequireProjectOwner(t *testing.T) {
	c, w := roleContext(models.RoleOwner)
	require.True(t, runGate(RequireProjectOwner(), c))

	c, w = roleContext(models.RoleModerator)
	require.False(t, runGate(RequireProjectOwner(), c))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_MissingCollaborator(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/projects/1/checkpoints", nil)

	require.False(t, runGate(RequireCheckpointRole(), c))
	require.Equal(t, http.StatusForbidden, w.Code)
}
