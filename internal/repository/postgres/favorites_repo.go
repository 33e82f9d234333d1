package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type favoritesRepo struct{ pool *pgxpool.Pool }

func (r *favoritesRepo) Add(ctx context.Context, userID, listingID int64) error {
	// The composite PK plus DO NOTHING makes the add atomic and idempotent;
	// no check-then-insert in application code.
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites(user_id, listing_id) VALUES($1,$2)
		 ON CONFLICT (user_id, listing_id) DO NOTHING`,
		userID, listingID,
	)
	if err != nil {
		return fmt.Errorf("add favorite: %w", translate(err))
	}
	return nil
}

func (r *favoritesRepo) Remove(ctx context.Context, userID, listingID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id=$1 AND listing_id=$2`,
		userID, listingID,
	)
	return err
}

func (r *favoritesRepo) ListByUser(ctx context.Context, userID int64) ([]models.ListingWithSeller, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+listingCols+`, u.username
		   FROM listings l
		   JOIN favorites f ON l.id = f.listing_id
		   JOIN users u ON l.user_id = u.id
		  WHERE f.user_id=$1`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ListingWithSeller{}
	for rows.Next() {
		var l models.ListingWithSeller
		if err := scanListing(rows, &l.Listing, &l.SellerUsername); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
