package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink/devlink/internal/domain/profile"
)

func TestCreateProfile(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "POST", "/api/profile", token, gin.H{
		"status": "Developer",
		"skills": "js,node",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	p := decodeJSON[profile.Profile](t, rr)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"js", "node"}, p.Skills)
}

func TestCreateProfile_MissingRequiredFields(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "POST", "/api/profile", token, gin.H{"company": "Acme"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	errs := decodeJSON[map[string]string](t, rr)
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "skills")
}

func TestGetOwnProfile_NotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "GET", "/api/profile", token, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	body := decodeJSON[map[string]string](t, rr)
	assert.Equal(t, "There is no profile for this user", body["noprofile"])
}

func TestGetProfile_PublicLookups(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "POST", "/api/profile", token, gin.H{
		"handle": "devhandle",
		"status": "Developer",
		"skills": "go",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	created := decodeJSON[profile.Profile](t, rr)

	t.Run("by handle", func(t *testing.T) {
		rr := s.do(t, "GET", "/api/profile/handle/devhandle", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		p := decodeJSON[profile.Profile](t, rr)
		assert.Equal(t, created.UserID, p.UserID)
	})

	t.Run("by user id", func(t *testing.T) {
		rr := s.do(t, "GET", "/api/profile/user/"+created.UserID.String(), "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown handle is 404", func(t *testing.T) {
		rr := s.do(t, "GET", "/api/profile/handle/nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("list all", func(t *testing.T) {
		rr := s.do(t, "GET", "/api/profile/all", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		profiles := decodeJSON[[]profile.Profile](t, rr)
		assert.Len(t, profiles, 1)
	})
}

func TestExperienceLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "POST", "/api/profile", token, gin.H{"status": "Developer", "skills": "go"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "POST", "/api/profile/experience", token, gin.H{
		"title": "Junior Engineer", "company": "Acme", "from": "2018-01-01",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "POST", "/api/profile/experience", token, gin.H{
		"title": "Senior Engineer", "company": "Acme", "from": "2021-01-01",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	p := decodeJSON[profile.Profile](t, rr)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Senior Engineer", p.Experience[0].Title, "newest entry sits at index 0")

	t.Run("missing fields rejected", func(t *testing.T) {
		rr := s.do(t, "POST", "/api/profile/experience", token, gin.H{"location": "Remote"})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		errs := decodeJSON[map[string]string](t, rr)
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "company")
		assert.Contains(t, errs, "from")
	})

	t.Run("delete by id", func(t *testing.T) {
		rr := s.do(t, "DELETE", "/api/profile/experience/"+p.Experience[0].ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		updated := decodeJSON[profile.Profile](t, rr)
		require.Len(t, updated.Experience, 1)
		assert.Equal(t, "Junior Engineer", updated.Experience[0].Title)
	})

	t.Run("delete unknown id is a no-op", func(t *testing.T) {
		rr := s.do(t, "DELETE", "/api/profile/experience/00000000-0000-0000-0000-000000000001", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		updated := decodeJSON[profile.Profile](t, rr)
		assert.Len(t, updated.Experience, 1)
	})
}

func TestEducationLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "POST", "/api/profile", token, gin.H{"status": "Developer", "skills": "go"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "POST", "/api/profile/education", token, gin.H{
		"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2014-09-01",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	p := decodeJSON[profile.Profile](t, rr)
	require.Len(t, p.Education, 1)

	// the education route is keyed by its own route parameter, not the
	// experience one
	rr = s.do(t, "DELETE", "/api/profile/education/"+p.Education[0].ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeJSON[profile.Profile](t, rr)
	assert.Empty(t, updated.Education)
}

func TestDeleteAccount(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Dev", "dev@example.com", "secret123")

	rr := s.do(t, "POST", "/api/profile", token, gin.H{"status": "Developer", "skills": "go"})
	require.Equal(t, http.StatusOK, rr.Code)
	created := decodeJSON[profile.Profile](t, rr)

	rr = s.do(t, "DELETE", "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeJSON[map[string]bool](t, rr)
	assert.True(t, resp["success"])

	t.Run("profile gone", func(t *testing.T) {
		rr := s.do(t, "GET", "/api/profile/user/"+created.UserID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("credentials gone", func(t *testing.T) {
		rr := s.do(t, "POST", "/api/users/login", "", gin.H{
			"email": "dev@example.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
