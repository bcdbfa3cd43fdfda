package product

import (
	"context"
	"errors"
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
		f := Filter{
			CategoryID: r.URL.Query().Get("categoryId"),
			Page:       web.QueryInt(r, "page", 1),
			Rows:       web.QueryInt(r, "rows", 20),
		}
		if f.Page < 1 || f.Rows < 1 || f.Rows > 100 {
			return weberr.BadRequest(errors.New("invalid page or rows"))
		}
		if f.CategoryID != "" {
			if err := validate.CheckID(f.CategoryID); err != nil {
				return weberr.BadRequest(err)
			}
		}

		prds, err := List(ctx, db, f)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, prds, "products retrieved", http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, prd, "product retrieved", http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var np ProductNew
		if err := web.Decode(w, r, &np); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(np); err != nil {
			return weberr.BadRequest(err)
		}

		prd, err := Create(ctx, db, np, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, prd, "product created", http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var pu ProductUp
		if err := web.Decode(w, r, &pu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pu); err != nil {
			return weberr.BadRequest(err)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}

		prd, err = Update(ctx, db, prd, pu, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, prd, "product updated", http.StatusOK)
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
		return web.Success(ctx, w, nil, "product deleted", http.StatusNoContent)
	}
}
