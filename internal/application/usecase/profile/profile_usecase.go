package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/devlink/devlink/adapters/event"
	"github.com/devlink/devlink/adapters/persistence"
	"github.com/devlink/devlink/internal/domain/profile"
	"github.com/devlink/devlink/pkg/logger"
)

// AccountRemover removes a user's profile and user record together.
type AccountRemover interface {
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type ProfileUseCase struct {
	profileRepo profile.Repository
	accounts    AccountRemover
	events      *event.KafkaProducerClient
	cache       *persistence.ProfileCache
	logger      logger.Logger
}

// NewProfileUseCase wires the profile operations. events and cache may be nil;
// mutations then skip publishing and reads always hit the database.
func NewProfileUseCase(
	repo profile.Repository,
	accounts AccountRemover,
	events *event.KafkaProducerClient,
	cache *persistence.ProfileCache,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		accounts:    accounts,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

// GetOwn returns the authenticated user's profile.
func (uc *ProfileUseCase) GetOwn(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetByUserID is the public lookup by owning user id.
func (uc *ProfileUseCase) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) GetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	key := persistence.CacheKeyHandle(handle)

	cached := &profile.Profile{}
	if hit, err := uc.cache.GetJSON(ctx, key, cached); err == nil && hit {
		return cached, nil
	}

	p, err := uc.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, key, p); err != nil {
		uc.logger.Warn("Failed to cache profile by handle")
	}
	return p, nil
}

func (uc *ProfileUseCase) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	cached := []*profile.Profile{}
	if hit, err := uc.cache.GetJSON(ctx, persistence.CacheKeyAllProfiles, &cached); err == nil && hit {
		return cached, nil
	}

	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, persistence.CacheKeyAllProfiles, profiles); err != nil {
		uc.logger.Warn("Failed to cache profile list")
	}
	return profiles, nil
}
