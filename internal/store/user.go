package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("store: insert user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userBy(ctx, "email", email)
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return s.userBy(ctx, "id", id)
}

func (s *Store) userBy(ctx context.Context, column, value string) (*model.User, error) {
	u := &model.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, created_at, updated_at
		 FROM users WHERE `+column+` = $1`, value,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load user: %w", err)
	}
	return u, nil
}
