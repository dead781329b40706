package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devlink/devlink/internal/domain/profile"
)

func TestReduce_SetCurrentUser(t *testing.T) {
	s := State{Errors: map[string]any{"error": "stale"}}

	s = reduce(s, Action{Type: ActionSetCurrentUser, User: UserClaims{ID: "abc", Name: "Ada"}})

	assert.True(t, s.Authenticated)
	assert.Equal(t, "Ada", s.User.Name)
	assert.Nil(t, s.Errors)
}

func TestReduce_EmptyUserMeansLoggedOut(t *testing.T) {
	s := State{Authenticated: true, User: UserClaims{ID: "abc"}}

	s = reduce(s, Action{Type: ActionSetCurrentUser})

	assert.False(t, s.Authenticated)
	assert.Empty(t, s.User.ID)
}

func TestReduce_ProfileFlow(t *testing.T) {
	s := State{}

	s = reduce(s, Action{Type: ActionProfileLoading})
	assert.True(t, s.Loading)

	p := &profile.Profile{Status: "Developer"}
	s = reduce(s, Action{Type: ActionGetProfile, Profile: p})
	assert.False(t, s.Loading)
	assert.Equal(t, "Developer", s.Profile.Status)

	s = reduce(s, Action{Type: ActionClearCurrentProfile})
	assert.Nil(t, s.Profile)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	original := State{Authenticated: true, User: UserClaims{ID: "abc"}}

	_ = reduce(original, Action{Type: ActionAccountDeleted})

	assert.True(t, original.Authenticated, "reducer input must stay untouched")
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := NewStore()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 100; i++ {
			store.Dispatch(Action{Type: ActionProfileLoading})
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		_ = store.State()
	}
	<-done

	assert.True(t, store.State().Loading)
}
