package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devunionorg/skillsnap/internal/application/ports"
)

// PasswordResetRepository implements ports.PasswordResetStore.
type PasswordResetRepository struct {
	pool *pgxpool.Pool
}

func NewPasswordResetRepository(pool *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{pool: pool}
}

const (
	createPasswordResetSQL   = `INSERT INTO password_resets (id, email, token_hash, expires_at, created_at) VALUES ($1, $2, $3, $4, NOW())`
	getPasswordResetByHash   = `SELECT email FROM password_resets WHERE token_hash = $1 AND expires_at > NOW() AND used_at IS NULL`
	markPasswordResetUsedSQL = `UPDATE password_resets SET used_at = NOW() WHERE token_hash = $1 AND used_at IS NULL AND expires_at > NOW()`
	purgePasswordResetsSQL   = `DELETE FROM password_resets WHERE expires_at < $1 OR used_at < $1`
)

var errResetNotFound = errors.New("password reset token not found")

func (r *PasswordResetRepository) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, createPasswordResetSQL, uuid.New(), email, tokenHash, expiresAt)
	return err
}

func (r *PasswordResetRepository) GetByTokenHash(ctx context.Context, tokenHash string) (string, error) {
	var email string
	err := r.pool.QueryRow(ctx, getPasswordResetByHash, tokenHash).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errResetNotFound
		}
		return "", err
	}
	return email, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, tokenHash string) (bool, error) {
	tag, err := r.pool.Exec(ctx, markPasswordResetUsedSQL, tokenHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// PurgeExpired deletes reset tokens that expired or were used before the cutoff.
func (r *PasswordResetRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, purgePasswordResetsSQL, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var (
	_ ports.PasswordResetStore = (*PasswordResetRepository)(nil)
	_ ports.TokenPurger        = (*PasswordResetRepository)(nil)
)
