package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/drivedeal/drivedeal-backend/internal/auth"
	"github.com/drivedeal/drivedeal-backend/internal/metrics"
	"github.com/drivedeal/drivedeal-backend/internal/models"
	repo "github.com/drivedeal/drivedeal-backend/internal/repository"
)

type UserService struct {
	r repo.Users
}

func NewUserService(r repo.Users) *UserService { return &UserService{r: r} }

// Register stores a new user with a one-way password hash. It never
// establishes a session.
func (s *UserService) Register(ctx context.Context, username, email, password string, phone *string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return models.User{}, models.NewError(models.ErrValidation, "Username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return models.User{}, models.NewError(models.ErrValidation, "Invalid email address")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.r.Create(ctx, username, email, hash, phone, false)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return models.User{}, models.NewError(models.ErrConflict, "Email already exists")
		}
		return models.User{}, err
	}
	return u, nil
}

// Login verifies credentials and returns the matching user. A missing email
// and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.r.GetByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return models.User{}, models.ErrCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return models.User{}, models.ErrCredentials
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.r.List(ctx)
}

// ToggleAdmin flips the target's admin flag. Acting on one's own account is
// blocked.
func (s *UserService) ToggleAdmin(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return models.NewError(models.ErrValidation, "Cannot modify your own admin status")
	}
	return s.r.ToggleAdmin(ctx, targetID)
}

// Delete removes the target user; the store cascades to their listings,
// favorites and reports. Self-deletion is blocked.
func (s *UserService) Delete(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return models.NewError(models.ErrValidation, "Cannot delete yourself")
	}
	return s.r.Delete(ctx, targetID)
}

// EnsureAdmin creates the seed administrator account if no user with that
// email exists yet.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.r.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.r.Create(ctx, username, email, hash, nil, true); err != nil {
		return err
	}
	slog.Info("seed admin created", "email", email)
	return nil
}
