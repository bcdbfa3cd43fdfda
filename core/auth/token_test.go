package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/shop-api/core/auth"
	"github.com/irsalhamdi/shop-api/core/claims"
)

const secret = "0123456789abcdef0123456789abcdef"

func newTokens(t *testing.T, secret, issuer string) *auth.Tokens {
	t.Helper()

	tokens, err := auth.NewTokens(secret, time.Hour, issuer)
	if err != nil {
		t.Fatalf("creating tokens: %v", err)
	}
	return tokens
}

func TestTokens(t *testing.T) {
	tokens := newTokens(t, secret, "shop-api")

	want := claims.Claims{UserID: "u1", Role: claims.RoleUser}
	now := time.Now()

	tok, err := tokens.Issue(want, now)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	if tok.ExpiresAt.Unix() != now.Add(time.Hour).Unix() {
		t.Fatalf("unexpected expiry %v", tok.ExpiresAt)
	}

	got, err := tokens.Parse(tok.Token)
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestTokensReject(t *testing.T) {
	tokens := newTokens(t, secret, "shop-api")
	clm := claims.Claims{UserID: "u1", Role: claims.RoleAdmin}

	expired, err := tokens.Issue(clm, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	foreign, err := newTokens(t, strings.Repeat("x", 32), "shop-api").Issue(clm, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	otherIssuer, err := newTokens(t, secret, "someone-else").Issue(clm, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	valid, err := tokens.Issue(clm, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"expired":      expired.Token,
		"wrong secret": foreign.Token,
		"wrong issuer": otherIssuer.Token,
		"tampered":     valid.Token + "x",
		"garbage":      "not.a.token",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(raw)
			if !errors.Is(err, auth.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewTokensShortSecret(t *testing.T) {
	if _, err := auth.NewTokens("short", time.Hour, "shop-api"); err == nil {
		t.Fatal("expected short secrets to be rejected")
	}
}
