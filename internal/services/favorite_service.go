package services

import (
	"context"

	"github.com/drivedeal/drivedeal-backend/internal/models"
	repo "github.com/drivedeal/drivedeal-backend/internal/repository"
)

type FavoriteService struct {
	r repo.Favorites
}

func NewFavoriteService(r repo.Favorites) *FavoriteService { return &FavoriteService{r: r} }

// Add favorites a listing for the user. Re-adding an existing pair succeeds
// without touching the original created_at.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID int64) error {
	if listingID <= 0 {
		return models.NewError(models.ErrValidation, "Listing ID is required")
	}
	return s.r.Add(ctx, userID, listingID)
}

// Remove un-favorites a listing. Removing an absent pair is a success; the
// caller cannot tell the two apart.
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID int64) error {
	return s.r.Remove(ctx, userID, listingID)
}

func (s *FavoriteService) List(ctx context.Context, userID int64) ([]models.ListingWithSeller, error) {
	return s.r.ListByUser(ctx, userID)
}
