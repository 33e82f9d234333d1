package models

import "time"

// Favorite is a (user, listing) join row. The pair is the primary key; a
// repeated add is a no-op.
type Favorite struct {
	UserID    int64     `json:"user_id"`
	ListingID int64     `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
