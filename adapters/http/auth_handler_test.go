package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	s := newTestServer(t)

	token := s.register(t, "Ada Lovelace", "ada@example.com", "secret123")
	require.NotEmpty(t, token)

	rr := s.do(t, "POST", "/api/users/login", "", gin.H{
		"email": "ada@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeJSON[map[string]string](t, rr)
	require.NotEmpty(t, resp["token"])

	claims, err := s.jwtSvc.ValidateToken(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.NotEmpty(t, claims.Avatar)

	// the token identifies the stored user
	_, err = s.users.FindByID(t.Context(), claims.UserID)
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "Ada", "ada@example.com", "secret123")

	rr := s.do(t, "POST", "/api/users/login", "", gin.H{
		"email": "ada@example.com", "password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, "POST", "/api/users/login", "", gin.H{
		"email": "ghost@example.com", "password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "Ada", "ada@example.com", "secret123")

	rr := s.do(t, "POST", "/api/users/register", "", gin.H{
		"name": "Imposter", "email": "ada@example.com", "password": "secret456",
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCurrentUser(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Ada", "ada@example.com", "secret123")

	rr := s.do(t, "GET", "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeJSON[CurrentUserResponse](t, rr)
	assert.Equal(t, "Ada", resp.Name)
	assert.NotEmpty(t, resp.ID)
}

func TestPrivateRoute_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth"},
		{"GET", "/api/profile"},
		{"POST", "/api/profile"},
		{"POST", "/api/profile/experience"},
		{"POST", "/api/profile/education"},
		{"DELETE", "/api/profile"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := s.do(t, tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestPrivateRoute_RejectsGarbageToken(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, "GET", "/api/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
