package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/irsalhamdi/shop-api/core/failure"
)

func TestKindOf(t *testing.T) {
	base := errors.New("sql: no rows in result set")
	err := fmt.Errorf("fetching item: %w", failure.Wrap(failure.CartItemNotFound, "cart item not found", base))

	if got := failure.KindOf(err); got != failure.CartItemNotFound {
		t.Fatalf("expected CartItemNotFound, got %s", got)
	}
	if !failure.Is(err, failure.CartItemNotFound) {
		t.Fatal("expected Is to match the wrapped kind")
	}
	if failure.Is(err, failure.CartNotFound) {
		t.Fatal("expected Is not to match another kind")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected the cause to stay in the chain")
	}

	if got := failure.KindOf(errors.New("plain")); got != failure.Unknown {
		t.Fatalf("expected Unknown for a plain error, got %s", got)
	}
	if got := failure.KindOf(nil); got != failure.Unknown {
		t.Fatalf("expected Unknown for nil, got %s", got)
	}
}

func TestErrorString(t *testing.T) {
	err := failure.New(failure.InvalidCartOperation, "not enough stock")
	if got, want := err.Error(), "InvalidCartOperation: not enough stock"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got, want := failure.Kind(99).String(), "Kind(99)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
