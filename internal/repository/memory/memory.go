// Package memory holds in-memory implementations of the repository
// interfaces. They mirror the Postgres constraint and cascade semantics
// (unique email, composite favorite key, ON DELETE CASCADE) so service and
// handler tests pin the same behavior the database enforces.
package memory

import (
	"sync"
	"time"

	"github.com/drivedeal/drivedeal-backend/internal/models"
	repo "github.com/drivedeal/drivedeal-backend/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	users     map[int64]models.User
	listings  map[int64]models.Listing
	favorites map[[2]int64]time.Time // (userID, listingID) -> created_at
	reports   map[int64]models.Report

	nextUserID    int64
	nextListingID int64
	nextReportID  int64
}

type Repos struct {
	Users     repo.Users
	Listings  repo.Listings
	Favorites repo.Favorites
	Reports   repo.Reports
}

// NewRepositories returns all four repositories backed by one shared store.
func NewRepositories() Repos {
	s := &Store{
		users:     map[int64]models.User{},
		listings:  map[int64]models.Listing{},
		favorites: map[[2]int64]time.Time{},
		reports:   map[int64]models.Report{},
	}
	return Repos{
		Users:     &usersRepo{s},
		Listings:  &listingsRepo{s},
		Favorites: &favoritesRepo{s},
		Reports:   &reportsRepo{s},
	}
}

// deleteListingLocked removes a listing and everything hanging off it.
func (s *Store) deleteListingLocked(id int64) {
	delete(s.listings, id)
	for key := range s.favorites {
		if key[1] == id {
			delete(s.favorites, key)
		}
	}
	for rid, r := range s.reports {
		if r.ListingID != nil && *r.ListingID == id {
			delete(s.reports, rid)
		}
	}
}

func (s *Store) sellerLocked(l models.Listing, withEmail bool) models.ListingWithSeller {
	out := models.ListingWithSeller{Listing: l}
	if u, ok := s.users[l.UserID]; ok {
		out.SellerUsername = u.Username
		out.SellerPhone = u.Phone
		if withEmail {
			out.SellerEmail = u.Email
		}
	}
	return out
}
