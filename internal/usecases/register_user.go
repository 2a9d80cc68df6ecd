// Package usecases holds the application use cases behind the HTTP API.
//
// Use cases know nothing about HTTP: their failures are RegisterUserError
// variants carrying an application error code, and the transport decides
// which status each one maps to.
package usecases

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/tbourn/go-error-codes/internal/usecases"

// RegistrationUser is a user to register.
type RegistrationUser struct {
	UserName string
	Password string
}

// RegisterUser registers user. It is a stand-in whose outcome is keyed on
// the user name:
//   - "foo": UnexpectedError
//   - "bar": RepositoryError
//   - "baz": WeakPasswordError
//   - "qux": UserAlreadyExistsError
//
// Every other name succeeds. Failures are always RegisterUserError values.
func RegisterUser(ctx context.Context, user RegistrationUser) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "register user use case")
	defer span.End()
	// The password is never recorded.
	span.SetAttributes(attribute.String("user_name", user.UserName))

	lg := zerolog.Ctx(ctx).With().Str("user_name", user.UserName).Logger()

	var err RegisterUserError
	switch user.UserName {
	case "foo":
		lg.Error().Msg("an error was raised when validating the user name")
		err = UnexpectedError{Err: errors.New("an error was raised when validating the user name")}
	case "bar":
		lg.Error().Msg("an error was raised when registering the user to the database")
		err = RepositoryError{Err: errors.New("an error was raised when registering the user to the database")}
	case "baz":
		lg.Error().Msg("the user was attempted to register with a weak password")
		err = WeakPasswordError{}
	case "qux":
		lg.Error().Msgf("the user name was already registered: %s", user.UserName)
		err = UserAlreadyExistsError{UserName: user.UserName}
	default:
		lg.Info().Msg("user registered")
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Int64("error_code", int64(err.ErrorCode())))
	return err
}
