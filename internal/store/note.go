package store

import (
	"context"
	"fmt"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreateNote(ctx context.Context, n *model.Note) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO notes (id, owner_id, text, created_at) VALUES ($1,$2,$3,$4)`,
		n.ID, n.OwnerID, n.Text, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert note: %w", err)
	}
	return nil
}

// NotesForUser returns the user's whole note history, newest first. Notes
// hang off the user, not off a single appointment.
func (s *Store) NotesForUser(ctx context.Context, userID string) ([]model.Note, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, owner_id, text, created_at
		 FROM notes
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	var out []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
