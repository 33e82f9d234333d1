package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/models"
)

// respondError maps the shared error taxonomy to a status code and writes the
// {"error": msg} body. Unknown errors are logged and surface as a bare 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrUpload):
		httpx.WriteError(w, http.StatusBadRequest, clientMessage(err, "Invalid input"))
	case errors.Is(err, models.ErrCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, models.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, clientMessage(err, "Not found"))
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Something went wrong!")
	}
}

// clientMessage returns the AppError message when the error carries one, or
// the fallback. Wrapped internal detail never leaks.
func clientMessage(err error, fallback string) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
