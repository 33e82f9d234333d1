package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/drivedeal/drivedeal-backend/internal/api/handlers"
	"github.com/drivedeal/drivedeal-backend/internal/auth"
	"github.com/drivedeal/drivedeal-backend/internal/config"
	"github.com/drivedeal/drivedeal-backend/internal/metrics"
	"github.com/drivedeal/drivedeal-backend/internal/middleware"
	"github.com/drivedeal/drivedeal-backend/internal/services"
	"github.com/drivedeal/drivedeal-backend/internal/upload"
)

type Deps struct {
	Cfg       config.Config
	TM        *auth.TokenManager
	Users     *services.UserService
	Listings  *services.ListingService
	Favorites *services.FavoriteService
	Reports   *services.ReportService
	Uploads   *upload.Store
}

func NewRouter(d Deps) http.Handler {
	am := middleware.NewAuthMiddleware(d.TM, d.Cfg.CookieName)

	authH := &handlers.AuthHandler{
		Users:        d.Users,
		TM:           d.TM,
		Carrier:      d.Cfg.AuthCarrier,
		CookieName:   d.Cfg.CookieName,
		SecureCookie: d.Cfg.Env == "prod",
	}
	listingH := &handlers.ListingHandler{Listings: d.Listings, Uploads: d.Uploads}
	favH := &handlers.FavoriteHandler{Favorites: d.Favorites}
	reportH := &handlers.ReportHandler{Reports: d.Reports}
	adminH := &handlers.AdminHandler{Users: d.Users, Listings: d.Listings, Reports: d.Reports}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(httprate.LimitByIP(d.Cfg.RateLimit, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// uploaded images are public assets
	r.Handle(upload.URLPrefix+"*", http.StripPrefix(upload.URLPrefix,
		http.FileServer(http.Dir(d.Uploads.Dir()))))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Get("/listings", listingH.List)
		r.Get("/listings/{id}", listingH.Get)

		// user-scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(am.Authenticate)

			r.Get("/me", authH.Me)

			r.Post("/listings", listingH.Create)
			r.Put("/listings/{id}", listingH.Update)
			r.Delete("/listings/{id}", listingH.Delete)

			r.Get("/favorites", favH.List)
			r.Post("/favorites", favH.Add)
			r.Delete("/favorites/{listingId}", favH.Remove)

			r.Post("/reports", reportH.File)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(am.Authenticate, middleware.RequireAdmin)

			r.Get("/users", adminH.ListUsers)
			r.Get("/reports", adminH.ListReports)
			r.Post("/users/{id}/toggle-admin", adminH.ToggleAdmin)
			r.Delete("/users/{id}", adminH.DeleteUser)
			r.Post("/listings/{id}/toggle-active", adminH.ToggleListingActive)
			r.Post("/reports/{id}/resolve", adminH.ResolveReport)
		})
	})

	return r
}
