package handlers

import (
	"net/http"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/middleware"
	"github.com/drivedeal/drivedeal-backend/internal/services"
)

// AdminHandler serves the moderation surface. Routes are mounted behind
// RequireAdmin, so handlers only deal with the happy path and store errors.
type AdminHandler struct {
	Users    *services.UserService
	Listings *services.ListingService
	Reports  *services.ReportService
}

// adminUser is the admin user-list row; it exposes phone but never the hash.
type adminUser struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	IsAdmin  bool    `json:"is_admin"`
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, adminUser{ID: u.ID, Username: u.Username, Email: u.Email, Phone: u.Phone, IsAdmin: u.IsAdmin})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reports)
}

func (h *AdminHandler) ToggleAdmin(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())
	targetID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := h.Users.ToggleAdmin(r.Context(), actor.UserID, targetID); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFrom(r.Context())
	targetID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := h.Users.Delete(r.Context(), actor.UserID, targetID); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (h *AdminHandler) ToggleListingActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if err := h.Listings.ToggleActive(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (h *AdminHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid report id")
		return
	}
	if err := h.Reports.Resolve(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}
