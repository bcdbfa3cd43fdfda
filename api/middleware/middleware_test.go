package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/shop-api/api/middleware"
	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/rate"
	"github.com/irsalhamdi/shop-api/validate"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func serve(t *testing.T, h web.Handler, mw ...web.Middleware) *httptest.ResponseRecorder {
	t.Helper()

	handler := web.WrapMiddleware(mw, h)

	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.RemoteAddr = "192.0.2.1:5555"
	w := httptest.NewRecorder()

	_ = handler(r.Context(), w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) weberr.ErrorResponse {
	t.Helper()

	var er weberr.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return er
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want weberr.ErrorResponse
	}{
		{
			name: "invalid cart operation",
			err:  failure.New(failure.InvalidCartOperation, "not enough stock"),
			want: weberr.ErrorResponse{Message: "not enough stock", StatusCode: http.StatusBadRequest},
		},
		{
			name: "foreign cart item",
			err:  fmt.Errorf("removing: %w", failure.New(failure.UnauthorizedCartAccess, "cart item does not belong to the user")),
			want: weberr.ErrorResponse{Message: "cart item does not belong to the user", StatusCode: http.StatusForbidden},
		},
		{
			name: "missing product",
			err:  failure.New(failure.ProductNotFound, "product not found"),
			want: weberr.ErrorResponse{Message: "product not found", StatusCode: http.StatusNotFound},
		},
		{
			name: "validation",
			err: weberr.BadRequest(validate.FieldErrors{
				{Path: "quantity", Message: "quantity must be 1 or greater", Code: "gte"},
			}),
			want: weberr.ErrorResponse{
				Message:    "validation failed",
				StatusCode: http.StatusBadRequest,
				Errors: []validate.FieldError{
					{Path: "quantity", Message: "quantity must be 1 or greater", Code: "gte"},
				},
			},
		},
		{
			name: "unauthenticated",
			err:  weberr.NotAuthorized(errors.New("no token")),
			want: weberr.ErrorResponse{Message: "not authorized to access resource", StatusCode: http.StatusUnauthorized},
		},
		{
			name: "untyped",
			err:  errors.New("connection refused"),
			want: weberr.ErrorResponse{Message: "Internal Server Error", StatusCode: http.StatusInternalServerError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := logtest.NewNullLogger()

			h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return tt.err
			}
			w := serve(t, h, middleware.Errors(log))

			if w.Code != tt.want.StatusCode {
				t.Fatalf("expected status %d, got %d", tt.want.StatusCode, w.Code)
			}

			if diff := cmp.Diff(tt.want, decodeError(t, w)); diff != "" {
				t.Fatalf("error body mismatch (-want +got):\n%s", diff)
			}

			if len(hook.Entries) != 1 {
				t.Fatalf("expected the error to be logged once, got %d entries", len(hook.Entries))
			}
		})
	}
}

func TestErrorsLogsKind(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return failure.New(failure.CartItemNotFound, "cart item not found")
	}
	serve(t, h, middleware.RequestID(), middleware.Errors(log))

	e := hook.LastEntry()
	if e == nil {
		t.Fatal("expected a log entry")
	}
	if got := e.Data["kind"]; got != "CartItemNotFound" {
		t.Fatalf("expected kind CartItemNotFound, got %v", got)
	}
	if got, _ := e.Data["req_id"].(string); got == "" {
		t.Fatal("expected a request id on the log entry")
	}
}

func TestPanics(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var m map[string]int
		m["boom"]++
		return nil
	}
	w := serve(t, h, middleware.Errors(log), middleware.Panics())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if e := hook.LastEntry(); e == nil || e.Data["trace"] == nil {
		t.Fatal("expected the panic trace to be logged")
	}
}

func TestRateLimit(t *testing.T) {
	lim := rate.NewLimiter(1, 5, rate.Every(time.Hour))
	defer lim.Stop()

	log, _ := logtest.NewNullLogger()

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Success(ctx, w, nil, "ok", http.StatusOK)
	}
	mw := []web.Middleware{middleware.Errors(log), middleware.RateLimit(lim)}

	if w := serve(t, h, mw...); w.Code != http.StatusOK {
		t.Fatalf("first request: expected status 200, got %d", w.Code)
	}

	w := serve(t, h, mw...)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected status 429, got %d", w.Code)
	}

	want := weberr.ErrorResponse{Message: "rate limit exceeded", StatusCode: http.StatusTooManyRequests}
	if diff := cmp.Diff(want, decodeError(t, w)); diff != "" {
		t.Fatalf("error body mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		seen = middleware.ContextRequestID(ctx)
		return nil
	}
	handler := web.WrapMiddleware([]web.Middleware{middleware.RequestID()}, h)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	if err := handler(r.Context(), w, r); err != nil {
		t.Fatal(err)
	}

	if seen != "abc-123" {
		t.Fatalf("expected caller request id, got %q", seen)
	}
	if got := w.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	if err := handler(r.Context(), w, r); err != nil {
		t.Fatal(err)
	}
	if seen == "" || seen == "abc-123" {
		t.Fatalf("expected a generated request id, got %q", seen)
	}
}
