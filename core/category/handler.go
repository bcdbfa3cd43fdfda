package category

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cats, err := List(ctx, db)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, cats, "categories retrieved", http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		cat, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, cat, "category retrieved", http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nc CategoryNew
		if err := web.Decode(w, r, &nc); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(nc); err != nil {
			return weberr.BadRequest(err)
		}

		cat, err := Create(ctx, db, nc, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, cat, "category created", http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var cu CategoryUp
		if err := web.Decode(w, r, &cu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cu); err != nil {
			return weberr.BadRequest(err)
		}

		cat, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}

		cat, err = Update(ctx, db, cat, cu, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, cat, "category updated", http.StatusOK)
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
		return web.Success(ctx, w, nil, "category deleted", http.StatusNoContent)
	}
}
