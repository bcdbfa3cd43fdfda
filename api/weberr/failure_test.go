package weberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/validate"
)

func TestStatusOf(t *testing.T) {
	tests := map[failure.Kind]int{
		failure.ProductNotFound:        http.StatusNotFound,
		failure.CategoryNotFound:       http.StatusNotFound,
		failure.UserNotFound:           http.StatusNotFound,
		failure.CartNotFound:           http.StatusNotFound,
		failure.CartItemNotFound:       http.StatusNotFound,
		failure.OrderNotFound:          http.StatusNotFound,
		failure.PaymentNotFound:        http.StatusNotFound,
		failure.InvalidCartOperation:   http.StatusBadRequest,
		failure.UnauthorizedCartAccess: http.StatusForbidden,
		failure.Forbidden:              http.StatusForbidden,
		failure.InvalidCredentials:     http.StatusUnauthorized,
		failure.Conflict:               http.StatusConflict,
		failure.Unknown:                http.StatusInternalServerError,
	}

	for kind, want := range tests {
		if got := weberr.StatusOf(kind); got != want {
			t.Errorf("%s: expected status %d, got %d", kind, want, got)
		}
	}
}

func TestFromFailure(t *testing.T) {
	err := fmt.Errorf("adding to cart: %w", failure.New(failure.InvalidCartOperation, "not enough stock"))

	body, status, ok := weberr.FromFailure(err)
	if !ok {
		t.Fatal("expected a typed failure to be recognized")
	}
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}

	want := &weberr.ErrorResponse{Message: "not enough stock", StatusCode: http.StatusBadRequest}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	if _, _, ok := weberr.FromFailure(errors.New("plain")); ok {
		t.Fatal("plain errors must not be treated as failures")
	}
	if _, _, ok := weberr.FromFailure(failure.New(failure.Unknown, "?")); ok {
		t.Fatal("unknown kind must fall through to the internal error path")
	}
}

func TestBadRequest(t *testing.T) {
	fe := validate.FieldErrors{{Path: "productId", Message: "productId is a required field", Code: "required"}}

	body, status, ok := weberr.Response(weberr.BadRequest(fe))
	if !ok || status != http.StatusBadRequest {
		t.Fatalf("expected a 400 response, got %d (%v)", status, ok)
	}

	want := &weberr.ErrorResponse{
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Errors:     []validate.FieldError(fe),
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	body, _, _ = weberr.Response(weberr.BadRequest(errors.New("unexpected EOF")))
	want = &weberr.ErrorResponse{Message: "bad request", StatusCode: http.StatusBadRequest}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}
