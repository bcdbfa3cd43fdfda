package random

import (
	"strings"
	"testing"
)

func TestStringSecure(t *testing.T) {
	a, err := StringSecure(48)
	if err != nil {
		t.Fatal(err)
	}
	b, err := StringSecure(48)
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 48 {
		t.Fatalf("expected 48 characters, got %d", len(a))
	}
	if a == b {
		t.Fatal("expected two secrets to differ")
	}
	for _, c := range a {
		if !strings.ContainsRune(charset, c) {
			t.Fatalf("unexpected character %q", c)
		}
	}

	if _, err := StringSecure(0); err == nil {
		t.Fatal("expected zero length to be rejected")
	}
}

func TestEmail(t *testing.T) {
	if Email() == Email() {
		t.Fatal("expected distinct addresses")
	}
	if !strings.HasSuffix(Email(), "@example.com") {
		t.Fatal("expected example.com domain")
	}
}
