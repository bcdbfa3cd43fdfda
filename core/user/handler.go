package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/claims"
	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		usr, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Success(ctx, w, usr, "user retrieved", http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		if !claims.CanAccess(ctx, id) {
			return failure.New(failure.Forbidden, "cannot read another user")
		}

		usr, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}

		return web.Success(ctx, w, usr, "user retrieved", http.StatusOK)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		page := web.QueryInt(r, "page", 1)
		rows := web.QueryInt(r, "rows", 20)
		if page < 1 || rows < 1 || rows > 100 {
			return weberr.BadRequest(errors.New("invalid page or rows"))
		}

		usrs, err := List(ctx, db, page, rows)
		if err != nil {
			return err
		}

		return web.Success(ctx, w, usrs, "users retrieved", http.StatusOK)
	}
}

// HandleCreate lets an admin create an account with any role.
func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nu UserNew
		if err := web.Decode(w, r, &nu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(nu); err != nil {
			return weberr.BadRequest(err)
		}

		usr, err := Create(ctx, db, nu, time.Now().UTC())
		if err != nil {
			return err
		}

		return web.Success(ctx, w, usr, "user created", http.StatusCreated)
	}
}

// HandleRegister creates a regular account. Any role in the payload is ignored.
func HandleRegister(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nu UserNew
		if err := web.Decode(w, r, &nu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}
		nu.Role = claims.RoleUser

		if err := validate.Check(nu); err != nil {
			return weberr.BadRequest(err)
		}

		usr, err := Create(ctx, db, nu, time.Now().UTC())
		if err != nil {
			return err
		}

		return web.Success(ctx, w, usr, "user registered", http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		if !claims.CanAccess(ctx, id) {
			return failure.New(failure.Forbidden, "cannot update another user")
		}

		var uu UserUp
		if err := web.Decode(w, r, &uu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(uu); err != nil {
			return weberr.BadRequest(err)
		}

		if uu.Role != nil && !claims.IsAdmin(ctx) {
			return failure.New(failure.Forbidden, "only admins can change roles")
		}

		usr, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}

		usr, err = Update(ctx, db, usr, uu, time.Now().UTC())
		if err != nil {
			return err
		}

		return web.Success(ctx, w, usr, "user updated", http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		if err := Delete(ctx, db, id); err != nil {
			return err
		}

		return web.Success(ctx, w, nil, "user deleted", http.StatusNoContent)
	}
}
