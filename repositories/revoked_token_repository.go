package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// RevokedTokenRepository persists logged-out JWT ids so revocation survives
// restarts and works across server instances.
type RevokedTokenRepository interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type postgresRevokedTokenRepository struct {
	db *sql.DB
}

func NewPostgresRevokedTokenRepository(db *sql.DB) RevokedTokenRepository {
	return &postgresRevokedTokenRepository{db: db}
}

func (r *postgresRevokedTokenRepository) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, jti, expiresAt)
	return err
}

func (r *postgresRevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT 1 FROM revoked_tokens WHERE jti = $1`

	var one int
	err := r.db.QueryRowContext(ctx, query, jti).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postgresRevokedTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
