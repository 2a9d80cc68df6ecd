package handlers

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/tbourn/go-error-codes/internal/usecases"
)

var tracer = otel.Tracer("github.com/tbourn/go-error-codes/internal/http/handlers")

// UserUseCase defines the user operations the handlers depend on.
//
// It is satisfied by RegisterUserFunc(usecases.RegisterUser) in production
// and by fakes in tests.
type UserUseCase interface {
	// RegisterUser registers user. Failures are usecases.RegisterUserError.
	RegisterUser(ctx context.Context, user usecases.RegistrationUser) error
}

// RegisterUserFunc adapts a function to UserUseCase.
type RegisterUserFunc func(ctx context.Context, user usecases.RegistrationUser) error

// RegisterUser calls f(ctx, user).
func (f RegisterUserFunc) RegisterUser(ctx context.Context, user usecases.RegistrationUser) error {
	return f(ctx, user)
}

// Handlers aggregates the use cases required by the HTTP endpoints.
type Handlers struct {
	users UserUseCase
}

// New constructs and returns a Handlers instance bound to the given use cases.
func New(users UserUseCase) *Handlers {
	return &Handlers{users: users}
}
