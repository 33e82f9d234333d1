package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/drivedeal/drivedeal-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Listings  repo.Listings
	Favorites repo.Favorites
	Reports   repo.Reports
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Listings:  &listingsRepo{pool},
		Favorites: &favoritesRepo{pool},
		Reports:   &reportsRepo{pool},
	}
}
