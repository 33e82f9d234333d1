package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) Create(_ context.Context, username, email, hash string, phone *string, isAdmin bool) (models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, fmt.Errorf("create user: %w", models.ErrConflict)
		}
	}
	s.nextUserID++
	u := models.User{
		ID:           s.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetByID(_ context.Context, id int64) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (r *usersRepo) List(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *usersRepo) ToggleAdmin(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.IsAdmin = !u.IsAdmin
	r.s.users[id] = u
	return nil
}

func (r *usersRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.users, id)

	// cascade: listings (and their favorites/reports), authored favorites,
	// reports filed by or against the user
	for lid, l := range s.listings {
		if l.UserID == id {
			s.deleteListingLocked(lid)
		}
	}
	for key := range s.favorites {
		if key[0] == id {
			delete(s.favorites, key)
		}
	}
	for rid, rep := range s.reports {
		if rep.ReporterID == id || rep.ReportedUserID == id {
			delete(s.reports, rid)
		}
	}
	return nil
}
