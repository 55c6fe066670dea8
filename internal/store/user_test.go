package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"clinic-booking-api/internal/model"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := st.CreateUser(context.Background(), &model.User{
		ID: "u-1", Email: "dup@clinic.fr", PasswordHash: "x", Name: "Dup", Role: model.RoleClient,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserByEmail(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at", "updated_at"}).
		AddRow("u-1", "doc@clinic.fr", "hash", "Dr Who", model.RolePractitioner, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("doc@clinic.fr").
		WillReturnRows(rows)

	u, err := st.UserByEmail(context.Background(), "doc@clinic.fr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if u.Role != model.RolePractitioner {
		t.Errorf("role: got %s", u.Role)
	}
	if !u.IsPractitioner() {
		t.Error("expected practitioner")
	}
}

func TestUserByEmailNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := st.UserByEmail(context.Background(), "nobody@clinic.fr")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
