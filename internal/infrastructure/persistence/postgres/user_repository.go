package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
	"github.com/devunionorg/skillsnap/internal/infrastructure/persistence/db"
)

const (
	userColumns       = `id, email, password_hash, has_profile, created_at, updated_at`
	createUserSQL     = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	getUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	updatePasswordSQL = `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL,
		user.ID.UUID, user.Email, user.PasswordHash, user.HasProfile, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err, "users_email_key") {
		return domerrors.ErrUserExists
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, getUserByEmailSQL, email)
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.getOne(ctx, getUserByIDSQL, userID.UUID)
}

func (r *UserRepository) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var u db.User
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.HasProfile, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, updatePasswordSQL, passwordHash, userID.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.NewNotFoundError("user", userID.String())
	}
	return nil
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		HasProfile:   u.HasProfile,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
