package product

import (
	"bytes"
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
		return failure.Wrap(failure.ProductNotFound, "product not found", err)
	case errors.Is(err, database.ErrDBForeignKey):
		return failure.Wrap(failure.CategoryNotFound, "category not found", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func Create(ctx context.Context, db sqlx.ExtContext, np ProductNew, now time.Time) (Product, error) {
	prd := Product{
		ID:          validate.GenerateID(),
		Name:        np.Name,
		Description: np.Description,
		Price:       np.Price,
		Stock:       np.Stock,
		CategoryID:  np.CategoryID,
		ImageURL:    np.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const q = `
	INSERT INTO products
		(product_id, name, description, price, stock, category_id, image_url, created_at, updated_at)
	VALUES
		(:product_id, :name, :description, :price, :stock, :category_id, :image_url, :created_at, :updated_at)`

	if _, err := database.NamedExecContext(ctx, db, q, prd); err != nil {
		return Product{}, storeErr(err, "inserting product")
	}
	return prd, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	in := struct {
		ID string `db:"product_id"`
	}{id}

	const q = `
	SELECT *
	FROM products
	WHERE product_id = :product_id`

	var prd Product
	if err := database.NamedQueryStruct(ctx, db, q, in, &prd); err != nil {
		return Product{}, storeErr(err, "selecting product")
	}
	return prd, nil
}

func List(ctx context.Context, db sqlx.ExtContext, f Filter) ([]Product, error) {
	in := struct {
		CategoryID string `db:"category_id"`
		Offset     int    `db:"offset"`
		Rows       int    `db:"rows"`
	}{f.CategoryID, (f.Page - 1) * f.Rows, f.Rows}

	buf := bytes.NewBufferString(`
	SELECT *
	FROM products`)

	if f.CategoryID != "" {
		buf.WriteString(`
	WHERE category_id = :category_id`)
	}

	buf.WriteString(`
	ORDER BY created_at, product_id
	OFFSET :offset ROWS FETCH NEXT :rows ROWS ONLY`)

	var prds []Product
	if err := database.NamedQuerySlice(ctx, db, buf.String(), in, &prds); err != nil {
		return nil, storeErr(err, "selecting products")
	}
	return prds, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, prd Product, pu ProductUp, now time.Time) (Product, error) {
	if pu.Name != nil {
		prd.Name = *pu.Name
	}
	if pu.Description != nil {
		prd.Description = *pu.Description
	}
	if pu.Price != nil {
		prd.Price = *pu.Price
	}
	if pu.Stock != nil {
		prd.Stock = pu.Stock
	}
	if pu.UnlimitedStock {
		prd.Stock = nil
	}
	if pu.CategoryID != nil {
		prd.CategoryID = pu.CategoryID
	}
	if pu.ImageURL != nil {
		prd.ImageURL = *pu.ImageURL
	}
	prd.UpdatedAt = now

	const q = `
	UPDATE products SET
		name = :name,
		description = :description,
		price = :price,
		stock = :stock,
		category_id = :category_id,
		image_url = :image_url,
		updated_at = :updated_at
	WHERE product_id = :product_id`

	n, err := database.NamedExecContext(ctx, db, q, prd)
	if err != nil {
		return Product{}, storeErr(err, "updating product")
	}
	if n == 0 {
		return Product{}, failure.New(failure.ProductNotFound, "product not found")
	}
	return prd, nil
}

// Delete removes the product. Cart lines holding it go with it.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	in := struct {
		ID string `db:"product_id"`
	}{id}

	const q = `
	DELETE FROM products
	WHERE product_id = :product_id`

	n, err := database.NamedExecContext(ctx, db, q, in)
	if err != nil {
		return storeErr(err, "deleting product")
	}
	if n == 0 {
		return failure.New(failure.ProductNotFound, "product not found")
	}
	return nil
}

// Catalog is the read only product lookup handed to other packages.
type Catalog struct {
	db sqlx.ExtContext
}

func NewCatalog(db sqlx.ExtContext) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) Find(ctx context.Context, id string) (Product, error) {
	return Fetch(ctx, c.db, id)
}
