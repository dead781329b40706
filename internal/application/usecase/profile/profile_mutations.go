package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devlink/devlink/adapters/event"
	"github.com/devlink/devlink/internal/domain/profile"
	"github.com/devlink/devlink/pkg/apperror"
)

type CreateOrUpdateProfileInput struct {
	UserID         uuid.UUID
	Handle         string
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string // comma-separated, as submitted by the form
	Bio            string
	GithubUsername string
	Social         profile.SocialLinks
}

// CreateOrUpdate upserts the caller's profile. An existing profile keeps its
// experience and education lists and creation time; only the flat fields are
// replaced.
func (uc *ProfileUseCase) CreateOrUpdate(ctx context.Context, input CreateOrUpdateProfileInput) (*profile.Profile, error) {
	now := time.Now().UTC()

	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		p = &profile.Profile{
			UserID:     input.UserID,
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
			CreatedAt:  now,
		}
	}

	p.Handle = input.Handle
	p.Company = input.Company
	p.Website = input.Website
	p.Location = input.Location
	p.Status = input.Status
	p.Skills = splitSkills(input.Skills)
	p.Bio = input.Bio
	p.GithubUsername = input.GithubUsername
	p.Social = input.Social
	p.UpdatedAt = now

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(p, event.ProfileEventTypeUpdated)
	return p, nil
}

type AddExperienceInput struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     *bool
	Description string
}

func (uc *ProfileUseCase) AddExperience(ctx context.Context, input AddExperienceInput) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	from, err := parseDate(input.From)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid from date", err)
	}
	to, err := parseOptionalDate(input.To)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid to date", err)
	}

	p.AddExperience(profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        from,
		To:          to,
		Current:     currentOrDefault(input.Current),
		Description: input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(p, event.ProfileEventTypeUpdated)
	return p, nil
}

type AddEducationInput struct {
	UserID       uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      *bool
	Description  string
}

func (uc *ProfileUseCase) AddEducation(ctx context.Context, input AddEducationInput) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	from, err := parseDate(input.From)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid from date", err)
	}
	to, err := parseOptionalDate(input.To)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid to date", err)
	}

	p.AddEducation(profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      currentOrDefault(input.Current),
		Description:  input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(p, event.ProfileEventTypeUpdated)
	return p, nil
}

// RemoveExperience deletes the entry matching entryID from the caller's
// profile. An unknown entry id is a no-op: the unchanged profile is returned.
func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveExperience(entryID) {
		return p, nil
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(p, event.ProfileEventTypeUpdated)
	return p, nil
}

func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveEducation(entryID) {
		return p, nil
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(p, event.ProfileEventTypeUpdated)
	return p, nil
}

// DeleteAccount removes the caller's profile and user record.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	handle := ""
	if p, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil {
		handle = p.Handle
	}

	if err := uc.accounts.DeleteAccount(ctx, userID); err != nil {
		return err
	}

	if uc.events != nil {
		payload := event.ProfileEventPayload{
			EventType: event.ProfileEventTypeDeleted,
			UserID:    userID,
			Handle:    handle,
		}
		go func() {
			if err := uc.events.PublishProfileEvent(context.Background(), payload); err != nil {
				uc.logger.Error("Failed to publish profile deleted event", err, zap.String("user_id", userID.String()))
			}
		}()
	}
	return nil
}

func (uc *ProfileUseCase) publish(p *profile.Profile, eventType event.ProfileEventType) {
	if uc.events == nil {
		return
	}
	payload := event.ProfileEventPayload{
		EventType: eventType,
		UserID:    p.UserID,
		Handle:    p.Handle,
	}
	go func() {
		if err := uc.events.PublishProfileEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish profile event", err, zap.String("user_id", payload.UserID.String()))
		}
	}()
}

// splitSkills turns the submitted "js,node" form value into an ordered list,
// dropping empty segments.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func currentOrDefault(current *bool) bool {
	if current == nil {
		return true
	}
	return *current
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
