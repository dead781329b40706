package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devlink/devlink/pkg/apperror"
)

type accountRemover struct {
	db *pgxpool.Pool
}

// NewAccountRemover deletes a user's profile and user record inside one
// transaction, so a crash between the two cannot leave an orphaned user.
func NewAccountRemover(db *pgxpool.Pool) *accountRemover {
	return &accountRemover{db: db}
}

func (r *accountRemover) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin delete-account transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete user", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit delete-account transaction", err)
	}
	return nil
}
