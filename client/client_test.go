package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink/devlink/pkg/auth"
)

func newTestToken(t *testing.T, name, avatar string) string {
	t.Helper()
	svc := auth.NewJWTService("client-test-secret", time.Hour)
	token, err := svc.GenerateToken(uuid.New(), name, avatar)
	require.NoError(t, err)
	return token
}

func TestLogin_StoresTokenAndDecodedIdentity(t *testing.T) {
	token := newTestToken(t, "Ada Lovelace", "https://www.gravatar.com/avatar/x")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"` + token + `"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.Login(t.Context(), "ada@example.com", "hunter22"))

	assert.Equal(t, token, c.Token())
	state := c.Store().State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "Ada Lovelace", state.User.Name)
	assert.NotEmpty(t, state.User.ID)
}

func TestLogin_FailureDispatchesServerErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"password":"Password incorrect"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Login(t.Context(), "ada@example.com", "wrong")

	require.Error(t, err)
	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	state := c.Store().State()
	assert.False(t, state.Authenticated)
	assert.Equal(t, "Password incorrect", state.Errors["password"])
	assert.Empty(t, c.Token())
}

func TestLogout_ClearsTokenAndState(t *testing.T) {
	c := New("http://unused")
	c.setToken("some-token")
	c.store.Dispatch(Action{Type: ActionSetCurrentUser, User: UserClaims{ID: "abc", Name: "Ada"}})

	c.Logout()

	assert.Empty(t, c.Token())
	state := c.Store().State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.Profile)
}

func TestCurrentProfile_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"Developer","skills":["js","node"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.setToken("my-token")
	require.NoError(t, c.CurrentProfile(t.Context()))

	state := c.Store().State()
	require.NotNil(t, state.Profile)
	assert.Equal(t, "Developer", state.Profile.Status)
	assert.False(t, state.Loading)
}

func TestCurrentProfile_MissingProfileIsEmptyDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"noprofile":"There is no profile for this user"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.CurrentProfile(t.Context())

	require.Error(t, err)
	state := c.Store().State()
	assert.Nil(t, state.Profile)
	assert.False(t, state.Loading)
	assert.Nil(t, state.Errors, "a missing own profile never shows an error banner")
}

func TestAllProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile/all", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"handle":"ada"},{"handle":"grace"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.AllProfiles(t.Context()))

	state := c.Store().State()
	require.Len(t, state.Profiles, 2)
	assert.Equal(t, "grace", state.Profiles[1].Handle)
}

func TestDeleteAccount_ResetsEverything(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/profile", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.setToken("my-token")
	c.store.Dispatch(Action{Type: ActionSetCurrentUser, User: UserClaims{ID: "abc"}})

	require.NoError(t, c.DeleteAccount(t.Context()))

	assert.Empty(t, c.Token())
	assert.Equal(t, State{}, c.Store().State())
}
