package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	"github.com/devunionorg/skillsnap/internal/infrastructure/persistence/db"
)

const (
	createRefreshTokenSQL = `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at) VALUES ($1, $2, $3, $4, NOW())`
	getRefreshTokenSQL    = `SELECT id, user_id, token_hash, expires_at, created_at, revoked_at FROM refresh_tokens WHERE token_hash = $1`
	revokeTokenSQL        = `UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL`
	revokeAllForUserSQL   = `UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`
	purgeRefreshTokensSQL = `DELETE FROM refresh_tokens WHERE expires_at < $1 OR revoked_at < $1`
)

var errTokenNotFound = errors.New("refresh token not found")

type TokenStore struct {
	pool *pgxpool.Pool
}

func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx, createRefreshTokenSQL, uuid.New(), userID.UUID, tokenHash, expiresAt)
	return err
}

func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	var r db.RefreshToken
	err := s.pool.QueryRow(ctx, getRefreshTokenSQL, tokenHash).
		Scan(&r.ID, &r.UserID, &r.TokenHash, &r.ExpiresAt, &r.CreatedAt, &r.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errTokenNotFound
		}
		return nil, err
	}
	return &ports.RefreshTokenInfo{
		UserID:    domain.NewUserID(r.UserID),
		ExpiresAt: r.ExpiresAt,
		RevokedAt: r.RevokedAt,
	}, nil
}

// RevokeRefreshToken returns false for unknown or already revoked tokens.
func (s *TokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) (bool, error) {
	tag, err := s.pool.Exec(ctx, revokeTokenSQL, tokenHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *TokenStore) RevokeAllForUser(ctx context.Context, userID domain.UserID) error {
	_, err := s.pool.Exec(ctx, revokeAllForUserSQL, userID.UUID)
	return err
}

// PurgeExpired deletes refresh tokens that expired or were revoked before the cutoff.
func (s *TokenStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, purgeRefreshTokensSQL, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Ensure TokenStore implements ports.TokenStore.
var (
	_ ports.TokenStore  = (*TokenStore)(nil)
	_ ports.TokenPurger = (*TokenStore)(nil)
)
