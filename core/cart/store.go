package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Store persists carts and their items in Postgres. The one cart per user
// and one line per product rules are unique constraints; every method is a
// single statement.
type Store struct {
	db sqlx.ExtContext
}

func NewStore(db sqlx.ExtContext) *Store {
	return &Store{db: db}
}

const itemColumns = `cart_item_id, cart_id, product_id, quantity, price_snapshot, created_at, updated_at`

// FindOrCreate returns the user's cart, inserting an empty active one first
// if needed. The no-op update on conflict makes RETURNING yield the existing row.
func (s *Store) FindOrCreate(ctx context.Context, userID string, now time.Time) (Cart, error) {
	in := Cart{
		ID:        validate.GenerateID(),
		UserID:    userID,
		Status:    Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const q = `
	INSERT INTO carts
		(cart_id, user_id, status, created_at, updated_at)
	VALUES
		(:cart_id, :user_id, :status, :created_at, :updated_at)
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING cart_id, user_id, status, created_at, updated_at`

	var crt Cart
	if err := database.NamedQueryStruct(ctx, s.db, q, in, &crt); err != nil {
		if errors.Is(err, database.ErrDBForeignKey) {
			return Cart{}, failure.Wrap(failure.UserNotFound, "user not found", err)
		}
		return Cart{}, fmt.Errorf("upserting cart for user[%s]: %w", userID, err)
	}
	crt.Items = []Line{}
	return crt, nil
}

// FetchByUser returns the user's cart with its lines, or CartNotFound.
func (s *Store) FetchByUser(ctx context.Context, userID string) (Cart, error) {
	in := struct {
		UserID string `db:"user_id"`
	}{userID}

	const q = `
	SELECT cart_id, user_id, status, created_at, updated_at
	FROM carts
	WHERE user_id = :user_id`

	var crt Cart
	if err := database.NamedQueryStruct(ctx, s.db, q, in, &crt); err != nil {
		if errors.Is(err, database.ErrDBNotFound) {
			return Cart{}, failure.Wrap(failure.CartNotFound, "cart not found", err)
		}
		return Cart{}, fmt.Errorf("selecting cart for user[%s]: %w", userID, err)
	}

	lines, err := s.Lines(ctx, crt.ID)
	if err != nil {
		return Cart{}, err
	}
	crt.Items = lines
	return crt, nil
}

// Lines returns the cart's items joined with their products, oldest first.
func (s *Store) Lines(ctx context.Context, cartID string) ([]Line, error) {
	in := struct {
		CartID string `db:"cart_id"`
	}{cartID}

	const q = `
	SELECT
		ci.cart_item_id, ci.cart_id, ci.product_id, ci.quantity, ci.price_snapshot, ci.created_at, ci.updated_at,
		p.product_id AS "product.product_id",
		p.name AS "product.name",
		p.description AS "product.description",
		p.price AS "product.price",
		p.stock AS "product.stock",
		p.category_id AS "product.category_id",
		p.image_url AS "product.image_url",
		p.created_at AS "product.created_at",
		p.updated_at AS "product.updated_at"
	FROM cart_items ci
	JOIN products p ON p.product_id = ci.product_id
	WHERE ci.cart_id = :cart_id
	ORDER BY ci.created_at, ci.cart_item_id`

	var lines []Line
	if err := database.NamedQuerySlice(ctx, s.db, q, in, &lines); err != nil {
		return nil, fmt.Errorf("selecting lines of cart[%s]: %w", cartID, err)
	}
	return lines, nil
}

// AddProduct inserts a line for the product or, when one exists, adds qty
// to it. The price snapshot of an existing line is left alone.
func (s *Store) AddProduct(ctx context.Context, cartID, productID string, qty int, price decimal.Decimal, now time.Time) (Item, error) {
	in := Item{
		ID:        validate.GenerateID(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const q = `
	WITH touch AS (
		UPDATE carts SET updated_at = :updated_at WHERE cart_id = :cart_id
	)
	INSERT INTO cart_items
		(` + itemColumns + `)
	VALUES
		(:cart_item_id, :cart_id, :product_id, :quantity, :price_snapshot, :created_at, :updated_at)
	ON CONFLICT (cart_id, product_id) DO UPDATE SET
		quantity = cart_items.quantity + EXCLUDED.quantity,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + itemColumns

	var it Item
	if err := database.NamedQueryStruct(ctx, s.db, q, in, &it); err != nil {
		if errors.Is(err, database.ErrDBForeignKey) {
			return Item{}, failure.Wrap(failure.ProductNotFound, "product not found", err)
		}
		return Item{}, fmt.Errorf("adding product[%s] to cart[%s]: %w", productID, cartID, err)
	}
	return it, nil
}

// UpdateItemQuantity overwrites the quantity and price snapshot of an item.
func (s *Store) UpdateItemQuantity(ctx context.Context, itemID string, qty int, price decimal.Decimal, now time.Time) (Item, error) {
	in := struct {
		ID        string          `db:"cart_item_id"`
		Quantity  int             `db:"quantity"`
		Price     decimal.Decimal `db:"price_snapshot"`
		UpdatedAt time.Time       `db:"updated_at"`
	}{itemID, qty, price, now}

	const q = `
	WITH updated AS (
		UPDATE cart_items SET
			quantity = :quantity,
			price_snapshot = :price_snapshot,
			updated_at = :updated_at
		WHERE cart_item_id = :cart_item_id
		RETURNING ` + itemColumns + `
	), touch AS (
		UPDATE carts SET updated_at = :updated_at WHERE cart_id IN (SELECT cart_id FROM updated)
	)
	SELECT ` + itemColumns + ` FROM updated`

	var it Item
	if err := database.NamedQueryStruct(ctx, s.db, q, in, &it); err != nil {
		if errors.Is(err, database.ErrDBNotFound) {
			return Item{}, failure.Wrap(failure.CartItemNotFound, "cart item not found", err)
		}
		return Item{}, fmt.Errorf("updating cart item[%s]: %w", itemID, err)
	}
	return it, nil
}

func (s *Store) RemoveItem(ctx context.Context, itemID string, now time.Time) error {
	in := struct {
		ID        string    `db:"cart_item_id"`
		UpdatedAt time.Time `db:"updated_at"`
	}{itemID, now}

	const q = `
	WITH deleted AS (
		DELETE FROM cart_items WHERE cart_item_id = :cart_item_id RETURNING cart_id
	)
	UPDATE carts SET updated_at = :updated_at
	WHERE cart_id IN (SELECT cart_id FROM deleted)`

	n, err := database.NamedExecContext(ctx, s.db, q, in)
	if err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", itemID, err)
	}
	if n == 0 {
		return failure.New(failure.CartItemNotFound, "cart item not found")
	}
	return nil
}

// FetchItem returns the item along with the id of the user owning its cart.
func (s *Store) FetchItem(ctx context.Context, itemID string) (Item, error) {
	in := struct {
		ID string `db:"cart_item_id"`
	}{itemID}

	const q = `
	SELECT
		ci.cart_item_id, ci.cart_id, ci.product_id, ci.quantity, ci.price_snapshot, ci.created_at, ci.updated_at,
		c.user_id
	FROM cart_items ci
	JOIN carts c ON c.cart_id = ci.cart_id
	WHERE ci.cart_item_id = :cart_item_id`

	var it Item
	if err := database.NamedQueryStruct(ctx, s.db, q, in, &it); err != nil {
		if errors.Is(err, database.ErrDBNotFound) {
			return Item{}, failure.Wrap(failure.CartItemNotFound, "cart item not found", err)
		}
		return Item{}, fmt.Errorf("selecting cart item[%s]: %w", itemID, err)
	}
	return it, nil
}

// Clear deletes every item of the cart. The cart itself stays.
func (s *Store) Clear(ctx context.Context, cartID string, now time.Time) error {
	in := struct {
		CartID    string    `db:"cart_id"`
		UpdatedAt time.Time `db:"updated_at"`
	}{cartID, now}

	const q = `
	WITH deleted AS (
		DELETE FROM cart_items WHERE cart_id = :cart_id
	)
	UPDATE carts SET updated_at = :updated_at
	WHERE cart_id = :cart_id`

	n, err := database.NamedExecContext(ctx, s.db, q, in)
	if err != nil {
		return fmt.Errorf("clearing cart[%s]: %w", cartID, err)
	}
	if n == 0 {
		return failure.New(failure.CartNotFound, "cart not found")
	}
	return nil
}
