package model

import (
	"time"

	"clinic-booking-api/internal/calendar"
)

type Role string

const (
	RolePractitioner Role = "PRACTITIONER"
	RoleClient       Role = "CLIENT"
)

// User is an account holder. Role may be blank on legacy records; a blank
// role carries no practitioner privileges.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsPractitioner() bool {
	return u.Role == RolePractitioner
}

// Appointment occupies one (date, time_range) slot. The pair is unique
// across all appointments; the database enforces it, see db/migrations.
type Appointment struct {
	ID         string
	ClientName string  // set only by practitioners booking for a named client
	OwnerID    *string // nullable, legacy rows may have no owner
	Date       string  // calendar day key, YYYY-MM-DD
	TimeRange  string  // slot key, e.g. "09:00-09:20"
	Subject    string
	CreatedAt  time.Time
}

// PastDue reports whether the appointment's start moment is strictly before
// now. Malformed stored values degrade to false; past-due is display
// metadata, never a write-time constraint.
func (a *Appointment) PastDue(now time.Time) bool {
	day, err := time.ParseInLocation("2006-01-02", a.Date, now.Location())
	if err != nil {
		return false
	}
	h, m, err := calendar.SlotStart(a.TimeRange)
	if err != nil {
		return false
	}
	start := day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	return now.After(start)
}

// Note is a clinician note attached to a user's history. Notes are written
// while viewing one appointment but belong to the appointment's owner.
type Note struct {
	ID        string
	OwnerID   *string
	Text      string
	CreatedAt time.Time
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
