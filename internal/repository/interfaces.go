package repository

import (
	"context"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type Users interface {
	// Create returns models.ErrConflict when the email is already taken.
	Create(ctx context.Context, username, email, passwordHash string, phone *string, isAdmin bool) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ToggleAdmin(ctx context.Context, id int64) error
	// Delete removes the user; dependent listings, favorites and reports go
	// with it via the store's cascade policy.
	Delete(ctx context.Context, id int64) error
}

type Listings interface {
	Create(ctx context.Context, l models.Listing) (models.Listing, error)
	// Update is scoped to (id, owner); zero matched rows yield
	// models.ErrNotFound so a non-owner cannot tell the row exists.
	Update(ctx context.Context, l models.Listing) (models.Listing, error)
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id int64) (models.ListingWithSeller, error)
	List(ctx context.Context, f models.ListingFilter) ([]models.ListingWithSeller, error)
	ToggleActive(ctx context.Context, id int64) error
}

type Favorites interface {
	// Add is upsert-ignore on the (user, listing) pair.
	Add(ctx context.Context, userID, listingID int64) error
	// Remove is idempotent; removing an absent pair is not an error.
	Remove(ctx context.Context, userID, listingID int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.ListingWithSeller, error)
}

type Reports interface {
	Create(ctx context.Context, r models.Report) (models.Report, error)
	ListAll(ctx context.Context) ([]models.ReportDetail, error)
	// Resolve is unconditional; resolving an already-resolved or missing
	// report succeeds.
	Resolve(ctx context.Context, id int64) error
}
