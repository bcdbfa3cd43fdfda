package validate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/shopspring/decimal"
)

type lineIn struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
}

func codes(t *testing.T, err error) map[string]string {
	t.Helper()

	fe, ok := err.(validate.FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}

	got := make(map[string]string, len(fe))
	for _, f := range fe {
		if f.Message == "" {
			t.Errorf("field %s has no message", f.Path)
		}
		got[f.Path] = f.Code
	}
	return got
}

func TestCheck(t *testing.T) {
	ok := lineIn{
		ProductID: validate.GenerateID(),
		Quantity:  2,
		Price:     decimal.RequireFromString("9.99"),
	}
	if err := validate.Check(ok); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	bad := lineIn{
		ProductID: "not-a-uuid",
		Quantity:  -1,
		Price:     decimal.RequireFromString("-0.01"),
	}
	err := validate.Check(bad)
	if !validate.IsFieldErrors(err) {
		t.Fatalf("expected field errors, got %v", err)
	}

	want := map[string]string{
		"productId": "uuid",
		"quantity":  "gte",
		"price":     "gte",
	}
	if diff := cmp.Diff(want, codes(t, err)); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckMissing(t *testing.T) {
	err := validate.Check(lineIn{})

	want := map[string]string{
		"productId": "required",
		"quantity":  "required",
	}
	if diff := cmp.Diff(want, codes(t, err)); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckID(t *testing.T) {
	if err := validate.CheckID(validate.GenerateID()); err != nil {
		t.Fatalf("expected generated id to be valid, got %v", err)
	}

	err := validate.CheckID("42")
	want := map[string]string{"id": "uuid"}
	if diff := cmp.Diff(want, codes(t, err)); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}
