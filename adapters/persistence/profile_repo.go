package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devlink/devlink/internal/domain/profile"
	"github.com/devlink/devlink/pkg/apperror"
	"github.com/devlink/devlink/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `
	p.user_id, p.handle, p.company, p.website, p.location, p.status, p.skills,
	p.bio, p.github_username, p.social, p.experience, p.education,
	p.created_at, p.updated_at, u.name, u.avatar
`

func (r *postgresProfileRepo) scanProfile(row pgx.Row, identifier string) (*profile.Profile, error) {
	p := &profile.Profile{}
	var handle, company, website, location, bio, githubUsername sql.NullString
	var socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.UserID,
		&handle,
		&company,
		&website,
		&location,
		&p.Status,
		&p.Skills,
		&bio,
		&githubUsername,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.User.Name,
		&p.User.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", identifier)
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	p.Handle = handle.String
	p.Company = company.String
	p.Website = website.String
	p.Location = location.String
	p.Bio = bio.String
	p.GithubUsername = githubUsername.String

	// Embedded JSONB lists. A malformed column degrades to empty rather than
	// failing the read, same as an absent one.
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social links", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Social = profile.SocialLinks{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	return p, nil
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, userID), userID.String())
}

func (r *postgresProfileRepo) GetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.handle = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, handle), handle)
}

func (r *postgresProfileRepo) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	builder := psql.Select(
		"p.user_id", "p.handle", "p.company", "p.website", "p.location", "p.status", "p.skills",
		"p.bio", "p.github_username", "p.social", "p.experience", "p.education",
		"p.created_at", "p.updated_at", "u.name", "u.avatar",
	).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.created_at DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows, "")
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social links", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	// Empty handle is stored as NULL so the unique index only applies to
	// profiles that actually chose one.
	var handle *string
	if p.Handle != "" {
		handle = &p.Handle
	}

	query := `
		INSERT INTO profiles (user_id, handle, company, website, location, status, skills,
			bio, github_username, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			handle = EXCLUDED.handle,
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, handle, p.Company, p.Website, p.Location, p.Status, p.Skills,
		p.Bio, p.GithubUsername, socialBytes, experienceBytes, educationBytes,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("profile", "handle", p.Handle)
		}
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
