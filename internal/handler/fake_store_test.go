package handler_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

// fakeStore is an in-memory stand-in for *store.Store with the same error
// semantics, including the slot uniqueness rule.
type fakeStore struct {
	mu            sync.Mutex
	users         map[string]*model.User
	refreshTokens map[string]*store.RefreshToken // by id
	appointments  map[string]*model.Appointment
	notes         []model.Note
	contacts      []model.ContactMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[string]*model.User{},
		refreshTokens: map[string]*store.RefreshToken{},
		appointments:  map[string]*model.Appointment{},
	}
}

func (f *fakeStore) CreateUser(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrEmailTaken
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UserByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "rt-" + tokenHash[:8]
	f.refreshTokens[id] = &store.RefreshToken{
		ID: id, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt, CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeStore) RefreshTokenByHash(_ context.Context, tokenHash string) (*store.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rt := range f.refreshTokens {
		if rt.TokenHash == tokenHash {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) RotateRefreshToken(_ context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if old, ok := f.refreshTokens[oldID]; ok {
		old.Revoked = true
		old.ReplacedBy = &newID
	}
	f.refreshTokens[newID] = &store.RefreshToken{
		ID: newID, UserID: userID, TokenHash: newHash, ExpiresAt: newExpiry, CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeStore) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rt := range f.refreshTokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (f *fakeStore) CreateAppointment(_ context.Context, a *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotTakenLocked(a.Date, a.TimeRange, "") {
		return store.ErrSlotTaken
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeStore) GetAppointment(_ context.Context, id string) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UpdateAppointment(_ context.Context, a *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[a.ID]; !ok {
		return store.ErrNotFound
	}
	if f.slotTakenLocked(a.Date, a.TimeRange, a.ID) {
		return store.ErrSlotTaken
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteAppointment(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeStore) ListForOwner(_ context.Context, ownerID string) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Appointment
	for _, a := range f.appointments {
		if a.OwnerID != nil && *a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Appointment, 0, len(f.appointments))
	for _, a := range f.appointments {
		out = append(out, *a)
	}
	sortAppointments(out)
	return out, nil
}

func (f *fakeStore) SlotTaken(_ context.Context, date, timeRange, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slotTakenLocked(date, timeRange, excludeID), nil
}

func (f *fakeStore) slotTakenLocked(date, timeRange, excludeID string) bool {
	for _, a := range f.appointments {
		if a.ID != excludeID && a.Date == date && a.TimeRange == timeRange {
			return true
		}
	}
	return false
}

func (f *fakeStore) CreateNote(_ context.Context, n *model.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, *n)
	return nil
}

func (f *fakeStore) NotesForUser(_ context.Context, userID string) ([]model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Note
	for _, n := range f.notes {
		if n.OwnerID != nil && *n.OwnerID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) CreateContactMessage(_ context.Context, m *model.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, *m)
	return nil
}

func sortAppointments(apts []model.Appointment) {
	sort.Slice(apts, func(i, j int) bool {
		if apts[i].Date != apts[j].Date {
			return apts[i].Date < apts[j].Date
		}
		return apts[i].TimeRange < apts[j].TimeRange
	})
}
