package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/claims"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/shopspring/decimal"
)

func HandleShow(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		crt, err := svc.GetCart(ctx, clm.UserID)
		if err != nil {
			return err
		}

		view := struct {
			Cart
			Total decimal.Decimal `json:"total"`
		}{crt, crt.Total()}

		return web.Success(ctx, w, view, "cart retrieved", http.StatusOK)
	}
}

func HandleCreateItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(err)
		}

		it, err := svc.AddToCart(ctx, clm.UserID, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}

		return web.Success(ctx, w, it, "item added to cart", http.StatusCreated)
	}
}

func HandleUpdateItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		itemID := web.Param(r, "item_id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.BadRequest(err)
		}

		var in ItemUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(err)
		}

		it, err := svc.UpdateItemQuantity(ctx, clm.UserID, itemID, in.Quantity)
		if err != nil {
			return err
		}

		return web.Success(ctx, w, it, "cart item updated", http.StatusOK)
	}
}

func HandleDeleteItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		itemID := web.Param(r, "item_id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.BadRequest(err)
		}

		if err := svc.RemoveFromCart(ctx, clm.UserID, itemID); err != nil {
			return err
		}

		return web.Success(ctx, w, nil, "cart item removed", http.StatusNoContent)
	}
}

func HandleDelete(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := svc.ClearCart(ctx, clm.UserID); err != nil {
			return err
		}

		return web.Success(ctx, w, nil, "cart cleared", http.StatusNoContent)
	}
}
