package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id" db:"product_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       *int            `json:"stock" db:"stock"`
	CategoryID  *string         `json:"categoryId" db:"category_id"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// HasStock reports whether qty units fit in the product's stock.
// A product without a stock value is unlimited.
func (p Product) HasStock(qty int) bool {
	return p.Stock == nil || *p.Stock >= qty
}

type ProductNew struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Stock       *int            `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string         `json:"categoryId" validate:"omitempty,uuid"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
}

type ProductUp struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" validate:"omitempty,max=5000"`
	Price          *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Stock          *int             `json:"stock" validate:"omitempty,gte=0"`
	UnlimitedStock bool             `json:"unlimitedStock" validate:"excluded_with=Stock"`
	CategoryID     *string          `json:"categoryId" validate:"omitempty,uuid"`
	ImageURL       *string          `json:"imageUrl" validate:"omitempty,url"`
}

type Filter struct {
	CategoryID string
	Page       int
	Rows       int
}
