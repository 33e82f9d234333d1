package services

import (
	"context"

	"github.com/drivedeal/drivedeal-backend/internal/metrics"
	"github.com/drivedeal/drivedeal-backend/internal/models"
	repo "github.com/drivedeal/drivedeal-backend/internal/repository"
)

type ListingService struct {
	r repo.Listings
}

func NewListingService(r repo.Listings) *ListingService { return &ListingService{r: r} }

func (s *ListingService) Create(ctx context.Context, userID int64, l models.Listing) (models.Listing, error) {
	l.UserID = userID
	if err := l.Validate(); err != nil {
		return models.Listing{}, err
	}
	created, err := s.r.Create(ctx, l)
	if err != nil {
		return models.Listing{}, err
	}
	metrics.ListingsCreated.Inc()
	return created, nil
}

// Update applies the same required-field rules as Create and is scoped to the
// owner; a non-owner sees the same not-found as a missing id.
func (s *ListingService) Update(ctx context.Context, userID, id int64, l models.Listing) (models.Listing, error) {
	l.ID = id
	l.UserID = userID
	if err := l.Validate(); err != nil {
		return models.Listing{}, err
	}
	return s.r.Update(ctx, l)
}

func (s *ListingService) Delete(ctx context.Context, userID, id int64) error {
	return s.r.Delete(ctx, id, userID)
}

// Get returns the listing joined with the owner's contact fields. Direct
// lookup by id has no active-only restriction.
func (s *ListingService) Get(ctx context.Context, id int64) (models.ListingWithSeller, error) {
	return s.r.GetByID(ctx, id)
}

// List returns active listings, newest first, AND-combining any filters.
func (s *ListingService) List(ctx context.Context, f models.ListingFilter) ([]models.ListingWithSeller, error) {
	return s.r.List(ctx, f)
}

// ToggleActive flips is_active regardless of ownership (admin soft-delete).
func (s *ListingService) ToggleActive(ctx context.Context, id int64) error {
	return s.r.ToggleActive(ctx, id)
}
