package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
)

func storeErr(err error, op string) error {
	switch {
	case errors.Is(err, database.ErrDBNotFound):
		return failure.Wrap(failure.PaymentNotFound, "payment not found", err)
	case errors.Is(err, database.ErrDBForeignKey):
		return failure.Wrap(failure.OrderNotFound, "order not found", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func Create(ctx context.Context, db sqlx.ExtContext, np PaymentNew, now time.Time) (Payment, error) {
	pay := Payment{
		ID:        validate.GenerateID(),
		OrderID:   np.OrderID,
		Amount:    np.Amount,
		Method:    np.Method,
		Status:    Pending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const q = `
	INSERT INTO payments
		(payment_id, order_id, amount, method, status, created_at, updated_at)
	VALUES
		(:payment_id, :order_id, :amount, :method, :status, :created_at, :updated_at)`

	if _, err := database.NamedExecContext(ctx, db, q, pay); err != nil {
		return Payment{}, storeErr(err, "inserting payment")
	}
	return pay, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Payment, error) {
	in := struct {
		ID string `db:"payment_id"`
	}{id}

	const q = `
	SELECT *
	FROM payments
	WHERE payment_id = :payment_id`

	var pay Payment
	if err := database.NamedQueryStruct(ctx, db, q, in, &pay); err != nil {
		return Payment{}, storeErr(err, "selecting payment")
	}
	return pay, nil
}

func ListByOrder(ctx context.Context, db sqlx.ExtContext, orderID string) ([]Payment, error) {
	in := struct {
		OrderID string `db:"order_id"`
	}{orderID}

	const q = `
	SELECT *
	FROM payments
	WHERE order_id = :order_id
	ORDER BY created_at`

	var pays []Payment
	if err := database.NamedQuerySlice(ctx, db, q, in, &pays); err != nil {
		return nil, storeErr(err, "selecting payments")
	}
	return pays, nil
}

func UpdateStatus(ctx context.Context, db sqlx.ExtContext, id string, status Status, now time.Time) (Payment, error) {
	in := struct {
		ID        string    `db:"payment_id"`
		Status    Status    `db:"status"`
		UpdatedAt time.Time `db:"updated_at"`
	}{id, status, now}

	const q = `
	UPDATE payments SET
		status = :status,
		updated_at = :updated_at
	WHERE payment_id = :payment_id
	RETURNING *`

	var pay Payment
	if err := database.NamedQueryStruct(ctx, db, q, in, &pay); err != nil {
		return Payment{}, storeErr(err, "updating payment status")
	}
	return pay, nil
}
