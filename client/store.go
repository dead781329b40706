// Package client is the Go counterpart of the web app's action layer: every
// action issues one HTTP call against the API and dispatches exactly one
// success or error message into a reducer-driven state store.
package client

import (
	"sync"

	"github.com/devlink/devlink/internal/domain/profile"
)

type ActionType string

const (
	ActionSetCurrentUser      ActionType = "SET_CURRENT_USER"
	ActionGetErrors           ActionType = "GET_ERRORS"
	ActionGetProfile          ActionType = "GET_PROFILE"
	ActionGetProfiles         ActionType = "GET_PROFILES"
	ActionProfileLoading      ActionType = "PROFILE_LOADING"
	ActionClearCurrentProfile ActionType = "CLEAR_CURRENT_PROFILE"
	ActionAccountDeleted      ActionType = "ACCOUNT_DELETED"
)

// UserClaims is the display identity decoded from the token. It is never
// used to authorize anything; the server re-verifies the token per request.
type UserClaims struct {
	ID     string
	Name   string
	Avatar string
}

type State struct {
	Authenticated bool
	User          UserClaims
	Profile       *profile.Profile
	Profiles      []*profile.Profile
	Loading       bool
	// Errors holds the raw error body of the last failed action.
	Errors map[string]any
}

type Action struct {
	Type     ActionType
	User     UserClaims
	Profile  *profile.Profile
	Profiles []*profile.Profile
	Errors   map[string]any
}

// reduce is the only state transition function. It never mutates the prior
// state.
func reduce(s State, a Action) State {
	switch a.Type {
	case ActionSetCurrentUser:
		s.User = a.User
		s.Authenticated = a.User.ID != ""
		if s.Authenticated {
			s.Errors = nil
		}
	case ActionGetErrors:
		s.Errors = a.Errors
		s.Loading = false
	case ActionProfileLoading:
		s.Loading = true
	case ActionGetProfile:
		s.Profile = a.Profile
		s.Loading = false
		s.Errors = nil
	case ActionGetProfiles:
		s.Profiles = a.Profiles
		s.Loading = false
		s.Errors = nil
	case ActionClearCurrentProfile:
		s.Profile = nil
		s.Profiles = nil
		s.Loading = false
	case ActionAccountDeleted:
		s = State{}
	}
	return s
}

// Store holds the client state. Reads return a copy; the only way to change
// state is dispatching an action.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, a)
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
