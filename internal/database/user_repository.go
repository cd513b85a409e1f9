package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
)

// UserRepo implements domain.UserRepository backed by PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, role, badge_code, created_at FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetByBadgeCode resolves an NFC badge scan to a clerk.
func (r *UserRepo) GetByBadgeCode(ctx context.Context, code string) (*domain.User, error) {
	u, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, name, role, badge_code, created_at FROM users WHERE badge_code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by badge code: %w", err)
	}
	return u, nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Role, &u.BadgeCode, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
