package weberr

import (
	"errors"
	"net/http"

	"github.com/irsalhamdi/shop-api/core/failure"
)

// StatusOf maps a failure kind to its HTTP status code.
func StatusOf(kind failure.Kind) int {
	switch kind {
	case failure.ProductNotFound,
		failure.CategoryNotFound,
		failure.UserNotFound,
		failure.CartNotFound,
		failure.CartItemNotFound,
		failure.OrderNotFound,
		failure.PaymentNotFound:
		return http.StatusNotFound
	case failure.InvalidCartOperation:
		return http.StatusBadRequest
	case failure.UnauthorizedCartAccess, failure.Forbidden:
		return http.StatusForbidden
	case failure.InvalidCredentials:
		return http.StatusUnauthorized
	case failure.Conflict:
		return http.StatusConflict
	case failure.Unknown:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// FromFailure builds the response for a typed core error. Unknown kinds
// are left to the generic internal error path.
func FromFailure(err error) (body *ErrorResponse, status int, ok bool) {
	var fe *failure.Error
	if !errors.As(err, &fe) || fe.Kind == failure.Unknown {
		return nil, 0, false
	}

	status = StatusOf(fe.Kind)
	return &ErrorResponse{Message: fe.Msg, StatusCode: status}, status, true
}
