package middleware

//go:generate go run ../../../cmd/errgen

// limitError is rendered by the limiters of this package.
//
//errgen:derive ResponseError
type limitError interface {
	error
	limitError()
}

// rateLimited rejects a request whose token bucket is empty.
//
//errgen:response_error(status_code = 429, error_code = 20000)
type rateLimited struct{}

func (rateLimited) limitError() {}

func (rateLimited) Error() string { return "Rate limit exceeded" }
