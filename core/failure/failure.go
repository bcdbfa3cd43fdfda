// Package failure holds the typed errors returned by the core packages.
// Each error carries a Kind that the HTTP layer maps to a status code.
package failure

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	ProductNotFound
	CategoryNotFound
	UserNotFound
	CartNotFound
	CartItemNotFound
	OrderNotFound
	PaymentNotFound
	InvalidCartOperation
	UnauthorizedCartAccess
	Forbidden
	InvalidCredentials
	Conflict
)

var kindNames = map[Kind]string{
	Unknown:                "Unknown",
	ProductNotFound:        "ProductNotFound",
	CategoryNotFound:       "CategoryNotFound",
	UserNotFound:           "UserNotFound",
	CartNotFound:           "CartNotFound",
	CartItemNotFound:       "CartItemNotFound",
	OrderNotFound:          "OrderNotFound",
	PaymentNotFound:        "PaymentNotFound",
	InvalidCartOperation:   "InvalidCartOperation",
	UnauthorizedCartAccess: "UnauthorizedCartAccess",
	Forbidden:              "Forbidden",
	InvalidCredentials:     "InvalidCredentials",
	Conflict:               "Conflict",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
