package category

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
		return failure.Wrap(failure.CategoryNotFound, "category not found", err)
	case errors.Is(err, database.ErrDBDuplicatedEntry):
		return failure.Wrap(failure.Conflict, "category name already in use", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func Create(ctx context.Context, db sqlx.ExtContext, nc CategoryNew, now time.Time) (Category, error) {
	cat := Category{
		ID:          validate.GenerateID(),
		Name:        nc.Name,
		Description: nc.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const q = `
	INSERT INTO categories
		(category_id, name, description, created_at, updated_at)
	VALUES
		(:category_id, :name, :description, :created_at, :updated_at)`

	if _, err := database.NamedExecContext(ctx, db, q, cat); err != nil {
		return Category{}, storeErr(err, "inserting category")
	}
	return cat, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Category, error) {
	in := struct {
		ID string `db:"category_id"`
	}{id}

	const q = `
	SELECT *
	FROM categories
	WHERE category_id = :category_id`

	var cat Category
	if err := database.NamedQueryStruct(ctx, db, q, in, &cat); err != nil {
		return Category{}, storeErr(err, "selecting category")
	}
	return cat, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Category, error) {
	const q = `
	SELECT *
	FROM categories
	ORDER BY name`

	var cats []Category
	if err := database.NamedQuerySlice(ctx, db, q, struct{}{}, &cats); err != nil {
		return nil, storeErr(err, "selecting categories")
	}
	return cats, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, cat Category, cu CategoryUp, now time.Time) (Category, error) {
	if cu.Name != nil {
		cat.Name = *cu.Name
	}
	if cu.Description != nil {
		cat.Description = *cu.Description
	}
	cat.UpdatedAt = now

	const q = `
	UPDATE categories SET
		name = :name,
		description = :description,
		updated_at = :updated_at
	WHERE category_id = :category_id`

	n, err := database.NamedExecContext(ctx, db, q, cat)
	if err != nil {
		return Category{}, storeErr(err, "updating category")
	}
	if n == 0 {
		return Category{}, failure.New(failure.CategoryNotFound, "category not found")
	}
	return cat, nil
}

// Delete removes the category. Its products keep existing without a category.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	in := struct {
		ID string `db:"category_id"`
	}{id}

	const q = `
	DELETE FROM categories
	WHERE category_id = :category_id`

	n, err := database.NamedExecContext(ctx, db, q, in)
	if err != nil {
		return storeErr(err, "deleting category")
	}
	if n == 0 {
		return failure.New(failure.CategoryNotFound, "category not found")
	}
	return nil
}
