package usecases

import "fmt"

// RegisterUserError is returned by RegisterUser. Error codes are derived by
// errgen; mapping to HTTP statuses is the transport's job.
//
//errgen:derive UseCaseError
type RegisterUserError interface {
	error
	ErrorCode() uint32
	registerUserError()
}

//go:generate go run ../../cmd/errgen

// UnexpectedError is a failure nobody planned for.
//
//errgen:use_case_error(error_code = 1000)
type UnexpectedError struct{ Err error }

// RepositoryError is a failure of the user store.
//
//errgen:use_case_error(error_code = 1001)
type RepositoryError struct{ Err error }

// WeakPasswordError rejects a password.
//
//errgen:use_case_error(error_code = 2000)
type WeakPasswordError struct{}

// UserAlreadyExistsError rejects a user name that is taken.
//
//errgen:use_case_error(error_code = 2001)
type UserAlreadyExistsError struct{ UserName string }

func (UnexpectedError) registerUserError()        {}
func (RepositoryError) registerUserError()        {}
func (WeakPasswordError) registerUserError()      {}
func (UserAlreadyExistsError) registerUserError() {}

func (e UnexpectedError) Error() string  { return fmt.Sprintf("Unexpected error: %v", e.Err) }
func (e UnexpectedError) Unwrap() error { return e.Err }

func (e RepositoryError) Error() string  { return fmt.Sprintf("Repository error: %v", e.Err) }
func (e RepositoryError) Unwrap() error { return e.Err }

func (WeakPasswordError) Error() string { return "Password is weak" }

func (e UserAlreadyExistsError) Error() string { return "User already exists: " + e.UserName }
