package payment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/order"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var np PaymentNew
		if err := web.Decode(w, r, &np); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(np); err != nil {
			return weberr.BadRequest(err)
		}

		if _, err := order.FetchVisible(ctx, db, np.OrderID); err != nil {
			return err
		}

		pay, err := Create(ctx, db, np, time.Now().UTC())
		if err != nil {
			return err
		}
		return web.Success(ctx, w, pay, "payment created", http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		pay, err := Fetch(ctx, db, id)
		if err != nil {
			return err
		}

		if _, err := order.FetchVisible(ctx, db, pay.OrderID); err != nil {
			return err
		}
		return web.Success(ctx, w, pay, "payment retrieved", http.StatusOK)
	}
}

func HandleListByOrder(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		orderID := web.Param(r, "id")
		if err := validate.CheckID(orderID); err != nil {
			return weberr.BadRequest(err)
		}

		if _, err := order.FetchVisible(ctx, db, orderID); err != nil {
			return err
		}

		pays, err := ListByOrder(ctx, db, orderID)
		if err != nil {
			return err
		}
		return web.Success(ctx, w, pays, "payments retrieved", http.StatusOK)
	}
}

// HandleUpdateStatus changes a payment's status. Completing a payment
// marks its order paid in the same transaction.
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

		var pay Payment
		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			now := time.Now().UTC()

			var err error
			pay, err = UpdateStatus(ctx, tx, id, up.Status, now)
			if err != nil {
				return err
			}

			if pay.Status != Completed {
				return nil
			}

			if _, err := order.UpdateStatus(ctx, tx, pay.OrderID, order.Paid, now); err != nil {
				return fmt.Errorf("marking order[%s] paid: %w", pay.OrderID, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		return web.Success(ctx, w, pay, "payment updated", http.StatusOK)
	}
}
