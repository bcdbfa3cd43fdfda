package order

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
		return failure.Wrap(failure.OrderNotFound, "order not found", err)
	case errors.Is(err, database.ErrDBForeignKey):
		return failure.Wrap(failure.UserNotFound, "user not found", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func Create(ctx context.Context, db sqlx.ExtContext, userID string, no OrderNew, now time.Time) (Order, error) {
	ord := Order{
		ID:        validate.GenerateID(),
		UserID:    userID,
		Status:    Pending,
		Total:     no.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const q = `
	INSERT INTO orders
		(order_id, user_id, status, total, created_at, updated_at)
	VALUES
		(:order_id, :user_id, :status, :total, :created_at, :updated_at)`

	if _, err := database.NamedExecContext(ctx, db, q, ord); err != nil {
		return Order{}, storeErr(err, "inserting order")
	}
	return ord, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Order, error) {
	in := struct {
		ID string `db:"order_id"`
	}{id}

	const q = `
	SELECT *
	FROM orders
	WHERE order_id = :order_id`

	var ord Order
	if err := database.NamedQueryStruct(ctx, db, q, in, &ord); err != nil {
		return Order{}, storeErr(err, "selecting order")
	}
	return ord, nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Order, error) {
	in := struct {
		UserID string `db:"user_id"`
	}{userID}

	const q = `
	SELECT *
	FROM orders
	WHERE user_id = :user_id
	ORDER BY created_at DESC`

	var ords []Order
	if err := database.NamedQuerySlice(ctx, db, q, in, &ords); err != nil {
		return nil, storeErr(err, "selecting orders")
	}
	return ords, nil
}

func UpdateStatus(ctx context.Context, db sqlx.ExtContext, id string, status Status, now time.Time) (Order, error) {
	in := struct {
		ID        string    `db:"order_id"`
		Status    Status    `db:"status"`
		UpdatedAt time.Time `db:"updated_at"`
	}{id, status, now}

	const q = `
	UPDATE orders SET
		status = :status,
		updated_at = :updated_at
	WHERE order_id = :order_id
	RETURNING *`

	var ord Order
	if err := database.NamedQueryStruct(ctx, db, q, in, &ord); err != nil {
		return Order{}, storeErr(err, "updating order status")
	}
	return ord, nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	in := struct {
		ID string `db:"order_id"`
	}{id}

	const q = `
	DELETE FROM orders
	WHERE order_id = :order_id`

	n, err := database.NamedExecContext(ctx, db, q, in)
	if err != nil {
		return storeErr(err, "deleting order")
	}
	if n == 0 {
		return failure.New(failure.OrderNotFound, "order not found")
	}
	return nil
}
