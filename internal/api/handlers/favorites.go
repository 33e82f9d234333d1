package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/middleware"
	"github.com/drivedeal/drivedeal-backend/internal/models"
	"github.com/drivedeal/drivedeal-backend/internal/services"
)

type FavoriteHandler struct {
	Favorites *services.FavoriteService
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	listings, err := h.Favorites.List(r.Context(), id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listings)
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var req struct {
		ListingID int64 `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Listing ID is required")
		return
	}
	if err := h.Favorites.Add(r.Context(), id.UserID, req.ListingID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Listing not found")
			return
		}
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	listingID, err := pathID(r, "listingId")
	if err != nil {
		// removing something that cannot exist is still a success
		httpx.WriteSuccess(w)
		return
	}
	if err := h.Favorites.Remove(r.Context(), id.UserID, listingID); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}
