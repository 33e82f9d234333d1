package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type listingsRepo struct{ s *Store }

func (r *listingsRepo) Create(_ context.Context, l models.Listing) (models.Listing, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[l.UserID]; !ok {
		return models.Listing{}, models.ErrNotFound
	}
	s.nextListingID++
	l.ID = s.nextListingID
	l.IsActive = true
	l.CreatedAt = time.Now()
	s.listings[l.ID] = l
	return l, nil
}

func (r *listingsRepo) Update(_ context.Context, l models.Listing) (models.Listing, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.listings[l.ID]
	if !ok || cur.UserID != l.UserID {
		return models.Listing{}, models.ErrNotFound
	}
	if l.ImageURL == nil {
		l.ImageURL = cur.ImageURL
	}
	l.IsActive = cur.IsActive
	l.CreatedAt = cur.CreatedAt
	s.listings[l.ID] = l
	return l, nil
}

func (r *listingsRepo) Delete(_ context.Context, id, userID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.listings[id]
	if !ok || cur.UserID != userID {
		return models.ErrNotFound
	}
	s.deleteListingLocked(id)
	return nil
}

func (r *listingsRepo) GetByID(_ context.Context, id int64) (models.ListingWithSeller, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	if !ok {
		return models.ListingWithSeller{}, models.ErrNotFound
	}
	return s.sellerLocked(l, true), nil
}

func (r *listingsRepo) List(_ context.Context, f models.ListingFilter) ([]models.ListingWithSeller, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ListingWithSeller{}
	for _, l := range s.listings {
		if !l.IsActive {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(l.Make), q) && !strings.Contains(strings.ToLower(l.Model), q) {
				continue
			}
		}
		if f.MinYear > 0 && l.Year < f.MinYear {
			continue
		}
		if f.MaxPrice > 0 && l.Price > f.MaxPrice {
			continue
		}
		if f.FuelType != "" && (l.FuelType == nil || *l.FuelType != f.FuelType) {
			continue
		}
		out = append(out, s.sellerLocked(l, false))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *listingsRepo) ToggleActive(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[id]
	if !ok {
		return models.ErrNotFound
	}
	l.IsActive = !l.IsActive
	s.listings[id] = l
	return nil
}
