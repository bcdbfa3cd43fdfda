package order

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

// FetchVisible returns the order if the caller owns it or is an admin.
// Other callers get OrderNotFound so order ids are not leaked.
func FetchVisible(ctx context.Context, db sqlx.ExtContext, id string) (Order, error) {
	ord, err := Fetch(ctx, db, id)
	if err != nil {
		return Order{}, err
	}

	if !claims.CanAccess(ctx, ord.UserID) {
		return Order{}, failure.New(failure.OrderNotFound, "order not found")
	}
	return ord, nil
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		ords, err := ListByUser(ctx, db, clm.UserID)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, ords, "orders retrieved", http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := FetchVisible(ctx, db, id)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, ord, "order retrieved", http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var no OrderNew
		if err := web.Decode(w, r, &no); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(no); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := Create(ctx, db, clm.UserID, no, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, ord, "order created", http.StatusCreated)
	}
}

func HandleUpdateStatus(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up StatusUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := UpdateStatus(ctx, db, id, up.Status, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, ord, "order updated", http.StatusOK)
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
		return web.Success(ctx, w, nil, "order deleted", http.StatusNoContent)
	}
}
