package service

import "errors"

// Error kinds translated to HTTP status codes at the handler boundary.
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrEmailTaken         = errors.New("email taken")         // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrNotFound           = errors.New("not found")           // 404
)

// ValidationError matches ErrValidation under errors.Is while keeping
// the exact message the client should see.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validation(msg string) error { return &ValidationError{Msg: msg} }
