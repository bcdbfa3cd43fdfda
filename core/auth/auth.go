package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/claims"
	"github.com/irsalhamdi/shop-api/core/user"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
)

func bearer(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", errors.New("expected authorization header format: Bearer <token>")
	}
	return parts[1], nil
}

// Authenticate puts the claims of a valid bearer token in the request context.
func Authenticate(tokens *Tokens) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			raw, err := bearer(r)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			clm, err := tokens.Parse(raw)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// Admin is Authenticate plus a role check.
func Admin(tokens *Tokens) web.Middleware {
	authen := Authenticate(tokens)
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !claims.IsAdmin(ctx) {
				return weberr.Forbidden(errors.New("admin role required"))
			}
			return handler(ctx, w, r)
		}
		return authen(h)
	}
	return m
}

func HandleLogin(db *sqlx.DB, tokens *Tokens) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cred user.Credentials
		if err := web.Decode(w, r, &cred); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cred); err != nil {
			return weberr.BadRequest(err)
		}

		usr, err := user.Authenticate(ctx, db, cred.Email, cred.Password)
		if err != nil {
			return err
		}

		tok, err := tokens.Issue(claims.Claims{UserID: usr.ID, Role: usr.Role}, time.Now())
		if err != nil {
			return err
		}

		return web.Success(ctx, w, tok, "login successful", http.StatusOK)
	}
}
