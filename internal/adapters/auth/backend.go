package auth

import (
	"context"

	"kingrun/internal/domain/user"
)

// Credentials is a login attempt. Email format is not checked.
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// Registration is a sign-up attempt.
type Registration struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// Backend validates credentials and produces the authenticated user.
// Implementations return user.ErrInvalidCredentials or user.ErrInvalidRegistration
// for rejected input; both cover unreachable backends as well.
type Backend interface {
	Login(ctx context.Context, c Credentials) (user.User, error)
	Register(ctx context.Context, r Registration) (user.User, error)
}
