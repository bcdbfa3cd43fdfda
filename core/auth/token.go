package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/irsalhamdi/shop-api/core/claims"
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens signs and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type tokenClaims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

func NewTokens(secret string, ttl time.Duration, issuer string) (*Tokens, error) {
	if len(secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, issuer: issuer}, nil
}

type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (t *Tokens) Issue(clm claims.Claims, now time.Time) (Token, error) {
	exp := now.Add(t.ttl)
	tc := tokenClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   clm.UserID,
			Issuer:    t.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
		},
		Role: clm.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(t.secret)
	if err != nil {
		return Token{}, fmt.Errorf("signing token: %w", err)
	}

	return Token{Token: signed, ExpiresAt: exp.UTC()}, nil
}

func (t *Tokens) Parse(raw string) (claims.Claims, error) {
	var tc tokenClaims
	keyFunc := func(tok *jwt.Token) (interface{}, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}

	tok, err := jwt.ParseWithClaims(raw, &tc, keyFunc)
	if err != nil {
		return claims.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return claims.Claims{}, ErrInvalidToken
	}
	if tc.Issuer != t.issuer || tc.Subject == "" {
		return claims.Claims{}, ErrInvalidToken
	}

	return claims.Claims{UserID: tc.Subject, Role: tc.Role}, nil
}
