package weberr

import (
	"errors"
	"net/http"

	"github.com/irsalhamdi/shop-api/validate"
)

// ErrorResponse is the body of every failed response.
type ErrorResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	StatusCode int                   `json:"statusCode"`
	Errors     []validate.FieldError `json:"errors,omitempty"`
}

type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(
		&ErrorResponse{Message: msg, StatusCode: status},
		status,
	))

	return Wrap(e, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(
		err,
		"the resource could not be found",
		http.StatusNotFound,
		opts...,
	)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(
		err,
		"not authorized to access resource",
		http.StatusUnauthorized,
		opts...,
	)
}

func Forbidden(err error, opts ...Opt) error {
	return NewError(
		err,
		"access to the resource is forbidden",
		http.StatusForbidden,
		opts...,
	)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(
		err,
		"the server encountered a problem and could not process your request",
		http.StatusInternalServerError,
		opts...,
	)
}

// BadRequest reports malformed input. Validation failures in err's chain
// are listed in the response body.
func BadRequest(err error, opts ...Opt) error {
	e := &RequestError{Err: err}
	body := &ErrorResponse{
		Message:    "bad request",
		StatusCode: http.StatusBadRequest,
	}

	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		body.Message = "validation failed"
		body.Errors = fe
	}

	opts = append(opts, WithResponse(body, http.StatusBadRequest))
	return Wrap(e, opts...)
}

func TooManyRequests(err error, opts ...Opt) error {
	return NewError(
		err,
		"rate limit exceeded",
		http.StatusTooManyRequests,
		opts...,
	)
}
