package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
)

// CreateAppointment inserts a new appointment. The UNIQUE(date, time_range)
// constraint is the authority on slot collisions; a violation surfaces as
// ErrSlotTaken even when the caller's pre-check raced another booking.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO appointments (id, client_name, owner_id, date, time_range, subject, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.ClientName, a.OwnerID, a.Date, a.TimeRange, a.Subject, a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("store: insert appointment: %w", err)
	}
	return nil
}

// SlotTaken reports whether another appointment already occupies the slot.
// excludeID lets an update skip the record being moved, so rebooking an
// appointment into its own current slot never conflicts with itself.
func (s *Store) SlotTaken(ctx context.Context, date, timeRange, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE date = $1 AND time_range = $2`
	args := []any{date, timeRange}

	if excludeID != "" {
		q += ` AND id != $3`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	if err := s.db.QueryRow(ctx, q, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("store: slot check: %w", err)
	}
	return exists, nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.db.QueryRow(ctx,
		`SELECT id, client_name, owner_id, date, time_range, subject, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClientName, &a.OwnerID, &a.Date, &a.TimeRange, &a.Subject, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load appointment: %w", err)
	}
	return a, nil
}

// UpdateAppointment rewrites the mutable fields. created_at is immutable.
func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE appointments
		 SET client_name=$1, owner_id=$2, date=$3, time_range=$4, subject=$5
		 WHERE id=$6`,
		a.ClientName, a.OwnerID, a.Date, a.TimeRange, a.Subject, a.ID,
	)
	if isUniqueViolation(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("store: update appointment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAppointment removes the row. Deleting an absent id is an error, not
// a no-op: the second of two deletes fails with ErrNotFound.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete appointment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForOwner returns the owner's appointments, slot order.
func (s *Store) ListForOwner(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, client_name, owner_id, date, time_range, subject, created_at
		 FROM appointments
		 WHERE owner_id = $1
		 ORDER BY date, time_range`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list appointments: %w", err)
	}
	return scanAppointments(rows)
}

// ListAll returns every appointment, slot order.
func (s *Store) ListAll(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, client_name, owner_id, date, time_range, subject, created_at
		 FROM appointments
		 ORDER BY date, time_range`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list appointments: %w", err)
	}
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.ClientName, &a.OwnerID, &a.Date, &a.TimeRange, &a.Subject, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
