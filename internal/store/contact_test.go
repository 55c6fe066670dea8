package store

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"clinic-booking-api/internal/model"
)

func TestCreateContactMessage(t *testing.T) {
	st, mock := newMockStore(t)
	m := &model.ContactMessage{
		ID:        "c-1",
		Name:      "Jean Dupont",
		Email:     "jean@example.fr",
		Message:   "Question sur les horaires",
		CreatedAt: time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(m.ID, m.Name, m.Email, m.Message, m.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := st.CreateContactMessage(context.Background(), m); err != nil {
		t.Fatalf("create contact message: %v", err)
	}
}
