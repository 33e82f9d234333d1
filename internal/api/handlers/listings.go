package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/middleware"
	"github.com/drivedeal/drivedeal-backend/internal/models"
	"github.com/drivedeal/drivedeal-backend/internal/services"
	"github.com/drivedeal/drivedeal-backend/internal/upload"
)

type ListingHandler struct {
	Listings *services.ListingService
	Uploads  *upload.Store
}

// List handles GET /api/listings with the optional search/minYear/maxPrice/
// fuelType/limit filters.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ListingFilter{
		Search:   q.Get("search"),
		FuelType: q.Get("fuelType"),
	}
	if v := q.Get("minYear"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.MinYear = n
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			f.MaxPrice = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}

	listings, err := h.Listings.List(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Listing not found")
		return
	}
	l, err := h.Listings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Listing not found")
			return
		}
		respondError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, l)
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	l, err := h.parseListingForm(w, r)
	if err != nil {
		respondError(w, err)
		return
	}
	created, err := h.Listings.Create(r.Context(), id.UserID, l)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, created)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	listingID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "Listing not found or not authorized")
		return
	}

	l, err := h.parseListingForm(w, r)
	if err != nil {
		respondError(w, err)
		return
	}
	updated, err := h.Listings.Update(r.Context(), id.UserID, listingID, l)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Listing not found or not authorized")
			return
		}
		respondError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	listingID, err := pathID(r, "id")
	if err == nil {
		err = h.Listings.Delete(r.Context(), id.UserID, listingID)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, strconv.ErrSyntax) {
			httpx.WriteError(w, http.StatusNotFound, "Listing not found or not authorized")
			return
		}
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

// parseListingForm decodes the multipart create/update payload. The body is
// capped slightly above the image limit so an oversized upload fails cleanly
// instead of being buffered in full.
func (h *ListingHandler) parseListingForm(w http.ResponseWriter, r *http.Request) (models.Listing, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Uploads.MaxBytes()+1<<20)
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		return models.Listing{}, models.NewError(models.ErrUpload, "File exceeds the %d byte limit", h.Uploads.MaxBytes())
	}

	var l models.Listing
	l.Make = r.FormValue("make")
	l.Model = r.FormValue("model")
	if v := r.FormValue("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.Listing{}, models.NewError(models.ErrValidation, "Year must be a number")
		}
		l.Year = n
	}
	if v := r.FormValue("price"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Listing{}, models.NewError(models.ErrValidation, "Price must be a number")
		}
		l.Price = n
	}
	if v := r.FormValue("mileage"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.Listing{}, models.NewError(models.ErrValidation, "Mileage must be a number")
		}
		l.Mileage = &n
	}
	l.FuelType = optField(r, "fuel_type")
	l.Transmission = optField(r, "transmission")
	l.Color = optField(r, "color")
	l.Description = optField(r, "description")

	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		url, err := h.Uploads.Save(file)
		if err != nil {
			return models.Listing{}, err
		}
		l.ImageURL = &url
	case errors.Is(err, http.ErrMissingFile):
		// keep the prior reference on update; the client may resend it
		l.ImageURL = optField(r, "image_url")
	default:
		return models.Listing{}, models.NewError(models.ErrUpload, "Unable to read uploaded file")
	}
	return l, nil
}

func optField(r *http.Request, name string) *string {
	if v := r.FormValue(name); v != "" {
		return &v
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
