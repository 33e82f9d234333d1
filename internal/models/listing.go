package models

import (
	"time"
)

const minListingYear = 1900

type Listing struct {
	ID           int64     `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        float64   `json:"price"`
	Mileage      *int64    `json:"mileage,omitempty"`
	FuelType     *string   `json:"fuel_type,omitempty"`
	Transmission *string   `json:"transmission,omitempty"`
	Color        *string   `json:"color,omitempty"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	UserID       int64     `json:"user_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListingWithSeller is a listing joined with the owner's public contact
// fields. Email is only populated on direct lookup by id.
type ListingWithSeller struct {
	Listing
	SellerUsername string  `json:"username"`
	SellerPhone    *string `json:"phone,omitempty"`
	SellerEmail    string  `json:"email,omitempty"`
}

// Validate checks the required-field rules shared by create and update.
// The client pre-validates, but the server must not trust it.
func (l *Listing) Validate() error {
	if l.Make == "" || l.Model == "" {
		return NewError(ErrValidation, "Required fields are missing")
	}
	if l.Year < minListingYear || l.Year > time.Now().Year()+1 {
		return NewError(ErrValidation, "Year must be between %d and %d", minListingYear, time.Now().Year()+1)
	}
	if l.Price <= 0 {
		return NewError(ErrValidation, "Price must be a positive number")
	}
	if l.Mileage != nil && *l.Mileage < 0 {
		return NewError(ErrValidation, "Mileage cannot be negative")
	}
	return nil
}

// ListingFilter holds the optional /api/listings query filters. Zero values
// mean "no filter"; combined filters are ANDed.
type ListingFilter struct {
	Search   string
	MinYear  int
	MaxPrice float64
	FuelType string
	Limit    int
}
