// Package httperr defines the uniform JSON error response of the API.
//
// Every error response body has the same three fields:
//
//	HTTP/1.1 409 Conflict
//	Content-Type: application/json
//
//	{"statusCode":409,"errorCode":10001,"message":"User already exists: qux"}
//
// errorCode is null when the error was raised by the framework (unknown
// route, malformed JSON, panics) rather than by application code.
//
// Error types opt in by implementing ResponseError. The errgen command
// derives the implementation from per-variant annotations, so callers never
// assemble a Body by hand.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ContentTypeJSON is the content type of every error response.
const ContentTypeJSON = "application/json"

// Body is the JSON error response body.
type Body struct {
	// HTTP status code, repeated in the body.
	StatusCode uint16 `json:"statusCode" example:"409"`
	// Application error code; null for framework errors.
	ErrorCode *uint32 `json:"errorCode" example:"10001"`
	// Human-readable message.
	Message string `json:"message" example:"User already exists: qux"`
}

// NewBody returns a Body. A nil errorCode is rendered as null.
func NewBody(statusCode uint16, errorCode *uint32, message string) Body {
	return Body{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// Response is a rendered error response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	// ErrorCode mirrors the body's errorCode; nil for framework errors.
	ErrorCode *uint32
}

// ResponseError is implemented by errors that render themselves as an HTTP
// response.
type ResponseError interface {
	error
	StatusCode() int
	ErrorResponse() Response
}

// Coder is implemented by errors carrying both an HTTP status and an
// application error code.
type Coder interface {
	error
	StatusCode() int
	ErrorCode() uint32
}

// NewResponse renders err with its status, its error code and err.Error()
// as the message.
func NewResponse(err Coder) Response {
	code := err.ErrorCode()
	return build(err.StatusCode(), &code, err.Error())
}

// FromStatus renders a framework error: the message is the canonical reason
// phrase of status and the error code is null.
func FromStatus(status int) Response {
	msg := http.StatusText(status)
	if msg == "" {
		msg = "Unexpected error raised"
	}
	return build(status, nil, msg)
}

// Render returns the response of the first ResponseError in err's chain,
// or a 500 framework response.
func Render(err error) Response {
	var re ResponseError
	if errors.As(err, &re) {
		return re.ErrorResponse()
	}
	return FromStatus(http.StatusInternalServerError)
}

func build(status int, errorCode *uint32, message string) Response {
	// Marshalling a Body cannot fail.
	b, _ := json.Marshal(NewBody(uint16(status), errorCode, message))
	h := make(http.Header)
	h.Set("Content-Type", ContentTypeJSON)
	return Response{Status: status, Header: h, Body: b, ErrorCode: errorCode}
}
