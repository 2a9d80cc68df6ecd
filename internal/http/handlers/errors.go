// Package handlers defines the HTTP rendering of use case errors.
//
// Each use case error enum has a response error enum here. Its variants
// carry the HTTP status and the application error code clients branch on;
// both are derived by errgen, together with the JSON rendering
// (see httperr.Body):
//
//	HTTP/1.1 409 Conflict
//	{
//	  "statusCode": 409,
//	  "errorCode": 10001,
//	  "message": "User already exists: qux"
//	}
package handlers

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-error-codes/internal/usecases"
	"github.com/tbourn/go-error-codes/pkg/httperr"
)

//go:generate go run ../../../cmd/errgen

// RegisterUserResponseError is the HTTP rendering of
// usecases.RegisterUserError.
//
//errgen:derive ResponseError
type RegisterUserResponseError interface {
	httperr.ResponseError
	ErrorCode() uint32
	registerUserResponseError()
}

// UnexpectedError renders usecases.UnexpectedError.
//
//errgen:response_error(status_code = 500, error_code = 1)
type UnexpectedError struct{ Err error }

// RepositoryError renders usecases.RepositoryError.
//
//errgen:response_error(status_code = 500, error_code = 2)
type RepositoryError struct{ Err error }

// WeakPasswordError renders usecases.WeakPasswordError.
//
//errgen:response_error(status_code = 400, error_code = 10000)
type WeakPasswordError struct{}

// UserAlreadyExistsError renders usecases.UserAlreadyExistsError.
//
//errgen:response_error(status_code = 409, error_code = 10001)
type UserAlreadyExistsError struct{ UserName string }

func (UnexpectedError) registerUserResponseError()        {}
func (RepositoryError) registerUserResponseError()        {}
func (WeakPasswordError) registerUserResponseError()      {}
func (UserAlreadyExistsError) registerUserResponseError() {}

func (e UnexpectedError) Error() string  { return fmt.Sprintf("Unexpected error: %v", e.Err) }
func (e UnexpectedError) Unwrap() error { return e.Err }

func (e RepositoryError) Error() string  { return fmt.Sprintf("Repository error: %v", e.Err) }
func (e RepositoryError) Unwrap() error { return e.Err }

func (WeakPasswordError) Error() string { return "Password is weak" }

func (e UserAlreadyExistsError) Error() string { return "User already exists: " + e.UserName }

// registerUserResponse maps a RegisterUser failure to its response error.
// Errors that are not usecases.RegisterUserError become UnexpectedError.
func registerUserResponse(err error) RegisterUserResponseError {
	var ue usecases.RegisterUserError
	if !errors.As(err, &ue) {
		return UnexpectedError{Err: err}
	}
	switch e := ue.(type) {
	case usecases.RepositoryError:
		return RepositoryError{Err: e.Err}
	case usecases.WeakPasswordError:
		return WeakPasswordError{}
	case usecases.UserAlreadyExistsError:
		return UserAlreadyExistsError{UserName: e.UserName}
	case usecases.UnexpectedError:
		return UnexpectedError{Err: e.Err}
	default:
		return UnexpectedError{Err: err}
	}
}
