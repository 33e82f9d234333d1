package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by repositories, services and handlers. Handlers map
// kinds to status codes with errors.Is; AppError carries the client-facing
// message.
var (
	ErrValidation  = errors.New("invalid input")
	ErrCredentials = errors.New("invalid credentials")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrUpload      = errors.New("upload rejected")
)

// AppError pairs an error kind with a message safe to show the client.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }
func (e *AppError) Unwrap() error { return e.Kind }

func NewError(kind error, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
