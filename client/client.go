package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devlink/devlink/internal/domain/profile"
	"github.com/devlink/devlink/pkg/auth"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *Store

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		store:      NewStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Store() *Store {
	return c.store
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// request issues one call. A stored token rides along as the bearer header.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Body: map[string]any{}}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// APIError carries the raw error body the server returned.
type APIError struct {
	Status int
	Body   map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.Status)
}

// dispatchErr maps a failed call to the single error state update.
func (c *Client) dispatchErr(err error) error {
	body := map[string]any{"error": err.Error()}
	if apiErr, ok := err.(*APIError); ok {
		body = apiErr.Body
	}
	c.store.Dispatch(Action{Type: ActionGetErrors, Errors: body})
	return err
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account. The server hands back a token but, like the
// original flow, the caller is expected to log in afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.request(ctx, http.MethodPost, "/api/users/register", body, nil); err != nil {
		return c.dispatchErr(err)
	}
	return nil
}

// Login exchanges credentials for a token, stores it for subsequent
// requests, and dispatches the decoded display identity. The local decode is
// deliberately unverified: it populates the UI only, never authorization.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return c.dispatchErr(err)
	}

	c.setToken(resp.Token)
	c.store.Dispatch(Action{Type: ActionSetCurrentUser, User: decodeDisplayClaims(resp.Token)})
	return nil
}

// Logout clears the stored token, the current user, and any cached profile
// state. No network call is involved.
func (c *Client) Logout() {
	c.setToken("")
	c.store.Dispatch(Action{Type: ActionSetCurrentUser})
	c.store.Dispatch(Action{Type: ActionClearCurrentProfile})
}

func (c *Client) CurrentProfile(ctx context.Context) error {
	c.store.Dispatch(Action{Type: ActionProfileLoading})

	var p profile.Profile
	if err := c.request(ctx, http.MethodGet, "/api/profile", nil, &p); err != nil {
		// absence of a profile is an empty dashboard, not an error banner
		c.store.Dispatch(Action{Type: ActionGetProfile, Profile: nil})
		return err
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

func (c *Client) AllProfiles(ctx context.Context) error {
	c.store.Dispatch(Action{Type: ActionProfileLoading})

	var profiles []*profile.Profile
	if err := c.request(ctx, http.MethodGet, "/api/profile/all", nil, &profiles); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfiles, Profiles: profiles})
	return nil
}

func (c *Client) ProfileByHandle(ctx context.Context, handle string) error {
	var p profile.Profile
	if err := c.request(ctx, http.MethodGet, "/api/profile/handle/"+handle, nil, &p); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

// ProfileForm mirrors the profile creation form.
type ProfileForm struct {
	Handle         string `json:"handle,omitempty"`
	Company        string `json:"company,omitempty"`
	Website        string `json:"website,omitempty"`
	Location       string `json:"location,omitempty"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio,omitempty"`
	GithubUsername string `json:"githubusername,omitempty"`
}

func (c *Client) CreateProfile(ctx context.Context, form ProfileForm) error {
	var p profile.Profile
	if err := c.request(ctx, http.MethodPost, "/api/profile", form, &p); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

type ExperienceForm struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     *bool  `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) AddExperience(ctx context.Context, form ExperienceForm) error {
	var p profile.Profile
	if err := c.request(ctx, http.MethodPost, "/api/profile/experience", form, &p); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

type EducationForm struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      *bool  `json:"current,omitempty"`
	Description  string `json:"description,omitempty"`
}

func (c *Client) AddEducation(ctx context.Context, form EducationForm) error {
	var p profile.Profile
	if err := c.request(ctx, http.MethodPost, "/api/profile/education", form, &p); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

func (c *Client) DeleteExperience(ctx context.Context, entryID string) error {
	var p profile.Profile
	if err := c.request(ctx, http.MethodDelete, "/api/profile/experience/"+entryID, nil, &p); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

func (c *Client) DeleteEducation(ctx context.Context, entryID string) error {
	var p profile.Profile
	if err := c.request(ctx, http.MethodDelete, "/api/profile/education/"+entryID, nil, &p); err != nil {
		return c.dispatchErr(err)
	}
	c.store.Dispatch(Action{Type: ActionGetProfile, Profile: &p})
	return nil
}

// DeleteAccount removes the account server-side and resets all client state.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.request(ctx, http.MethodDelete, "/api/profile", nil, nil); err != nil {
		return c.dispatchErr(err)
	}
	c.setToken("")
	c.store.Dispatch(Action{Type: ActionAccountDeleted})
	return nil
}

// decodeDisplayClaims reads the token payload without checking the
// signature. Display data only.
func decodeDisplayClaims(token string) UserClaims {
	claims := &auth.CustomClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return UserClaims{}
	}
	return UserClaims{
		ID:     claims.UserID.String(),
		Name:   claims.Name,
		Avatar: claims.Avatar,
	}
}
