package store

import (
	"context"
	"fmt"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreateContactMessage(ctx context.Context, m *model.ContactMessage) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at) VALUES ($1,$2,$3,$4,$5)`,
		m.ID, m.Name, m.Email, m.Message, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert contact message: %w", err)
	}
	return nil
}
