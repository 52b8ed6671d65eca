package db

import (
	"context"
	"time"
)

// SaveToken upserts a token record keyed by its hash. The row is visible to
// lookups as soon as this returns.
func (db *Postgres) SaveToken(ctx context.Context, hash []byte, userID int64, scope string, expiry time.Time) error {
	query := `
		INSERT INTO tokens (hash, user_id, scope, expiry)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hash)
		DO UPDATE SET user_id = EXCLUDED.user_id, scope = EXCLUDED.scope, expiry = EXCLUDED.expiry
	`
	_, err := db.Pool.Exec(ctx, query, hash, userID, scope, expiry)
	return err
}

// FindUserIDByTokenHash returns the owning user only for a live token: the
// hash must match, the scope must match exactly, and the expiry must still be
// in the future. Unknown and expired tokens are indistinguishable here.
func (db *Postgres) FindUserIDByTokenHash(ctx context.Context, hash []byte, scope string, now time.Time) (int64, error) {
	query := `
		SELECT user_id
		FROM tokens
		WHERE hash = $1 AND scope = $2 AND expiry > $3
	`
	var userID int64
	if err := db.Pool.QueryRow(ctx, query, hash, scope, now).Scan(&userID); err != nil {
		return 0, err
	}
	return userID, nil
}

// DeleteTokensForUser removes every token for the user under the given scope.
// Deleting zero rows is not an error.
func (db *Postgres) DeleteTokensForUser(ctx context.Context, userID int64, scope string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM tokens WHERE user_id = $1 AND scope = $2`, userID, scope)
	return err
}
