package cart

import (
	"time"

	"github.com/irsalhamdi/shop-api/core/product"
	"github.com/shopspring/decimal"
)

type Status string

const (
	Active    Status = "active"
	Abandoned Status = "abandoned"
	Converted Status = "converted"
)

type Cart struct {
	ID        string    `json:"id" db:"cart_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Items     []Line    `json:"items" db:"-"`
}

// Item is one product line of a cart. Price holds the unit price seen
// when the product was added or its quantity last changed.
type Item struct {
	ID        string          `json:"id" db:"cart_item_id"`
	CartID    string          `json:"cartId" db:"cart_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"priceAtTimeOfAddition" db:"price_snapshot"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`

	// Owner of the cart holding the item. Only set by FetchItem.
	UserID string `json:"-" db:"user_id"`
}

// Line is an item together with the current product details.
type Line struct {
	Item
	Product product.Product `json:"product" db:"product"`
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10000"`
}

type ItemUp struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=10000"`
}

// Total sums quantity times price snapshot over every line.
func (c Cart) Total() decimal.Decimal {
	tot := decimal.Zero
	for _, l := range c.Items {
		tot = tot.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return tot
}
