package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivedeal/drivedeal-backend/internal/models"
)

type listingsRepo struct{ pool *pgxpool.Pool }

const listingCols = `l.id, l.make, l.model, l.year, l.price, l.mileage, l.fuel_type,
	l.transmission, l.color, l.description, l.image_url, l.user_id, l.is_active, l.created_at`

func scanListing(row pgx.Row, l *models.Listing, extra ...any) error {
	dest := []any{
		&l.ID, &l.Make, &l.Model, &l.Year, &l.Price, &l.Mileage, &l.FuelType,
		&l.Transmission, &l.Color, &l.Description, &l.ImageURL, &l.UserID, &l.IsActive, &l.CreatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *listingsRepo) Create(ctx context.Context, l models.Listing) (models.Listing, error) {
	err := scanListing(r.pool.QueryRow(ctx,
		`INSERT INTO listings
		 (make, model, year, price, mileage, fuel_type, transmission, color, description, image_url, user_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING `+strings.ReplaceAll(listingCols, "l.", ""),
		l.Make, l.Model, l.Year, l.Price, l.Mileage, l.FuelType,
		l.Transmission, l.Color, l.Description, l.ImageURL, l.UserID,
	), &l)
	if err != nil {
		return models.Listing{}, fmt.Errorf("create listing: %w", translate(err))
	}
	return l, nil
}

func (r *listingsRepo) Update(ctx context.Context, l models.Listing) (models.Listing, error) {
	// COALESCE keeps the prior image reference when none is supplied. The
	// WHERE clause scopes the update to the owner so a non-owner gets the
	// same not-found as a missing id.
	err := scanListing(r.pool.QueryRow(ctx,
		`UPDATE listings SET
		   make=$3, model=$4, year=$5, price=$6, mileage=$7,
		   fuel_type=$8, transmission=$9, color=$10, description=$11,
		   image_url=COALESCE($12, image_url)
		 WHERE id=$1 AND user_id=$2
		 RETURNING `+strings.ReplaceAll(listingCols, "l.", ""),
		l.ID, l.UserID, l.Make, l.Model, l.Year, l.Price, l.Mileage,
		l.FuelType, l.Transmission, l.Color, l.Description, l.ImageURL,
	), &l)
	if err != nil {
		return models.Listing{}, translate(err)
	}
	return l, nil
}

func (r *listingsRepo) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *listingsRepo) GetByID(ctx context.Context, id int64) (models.ListingWithSeller, error) {
	var l models.ListingWithSeller
	err := scanListing(r.pool.QueryRow(ctx,
		`SELECT `+listingCols+`, u.username, u.phone, u.email
		   FROM listings l JOIN users u ON l.user_id = u.id
		  WHERE l.id=$1`, id,
	), &l.Listing, &l.SellerUsername, &l.SellerPhone, &l.SellerEmail)
	if err != nil {
		return models.ListingWithSeller{}, translate(err)
	}
	return l, nil
}

func (r *listingsRepo) List(ctx context.Context, f models.ListingFilter) ([]models.ListingWithSeller, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + listingCols + `, u.username, u.phone
		FROM listings l JOIN users u ON l.user_id = u.id
		WHERE l.is_active`)
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		b.WriteString(` AND (l.make ILIKE ` + p + ` OR l.model ILIKE ` + p + `)`)
	}
	if f.MinYear > 0 {
		b.WriteString(` AND l.year >= ` + arg(f.MinYear))
	}
	if f.MaxPrice > 0 {
		b.WriteString(` AND l.price <= ` + arg(f.MaxPrice))
	}
	if f.FuelType != "" {
		b.WriteString(` AND l.fuel_type = ` + arg(f.FuelType))
	}
	b.WriteString(` ORDER BY l.created_at DESC`)
	if f.Limit > 0 {
		b.WriteString(` LIMIT ` + arg(f.Limit))
	}

	rows, err := r.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ListingWithSeller{}
	for rows.Next() {
		var l models.ListingWithSeller
		if err := scanListing(rows, &l.Listing, &l.SellerUsername, &l.SellerPhone); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *listingsRepo) ToggleActive(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE listings SET is_active = NOT is_active WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
