package memory

import (
	"context"
	"time"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type favoritesRepo struct{ s *Store }

func (r *favoritesRepo) Add(_ context.Context, userID, listingID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listingID]; !ok {
		return models.ErrNotFound
	}
	key := [2]int64{userID, listingID}
	if _, ok := s.favorites[key]; ok {
		return nil // upsert-ignore, created_at untouched
	}
	s.favorites[key] = time.Now()
	return nil
}

func (r *favoritesRepo) Remove(_ context.Context, userID, listingID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, [2]int64{userID, listingID})
	return nil
}

func (r *favoritesRepo) ListByUser(_ context.Context, userID int64) ([]models.ListingWithSeller, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ListingWithSeller{}
	for key := range s.favorites {
		if key[0] != userID {
			continue
		}
		if l, ok := s.listings[key[1]]; ok {
			ls := s.sellerLocked(l, false)
			ls.SellerPhone = nil // favorites join only carries the username
			out = append(out, ls)
		}
	}
	return out, nil
}
