package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Pending   Status = "pending"
	Paid      Status = "paid"
	Cancelled Status = "cancelled"
)

type Order struct {
	ID        string          `json:"id" db:"order_id"`
	UserID    string          `json:"userId" db:"user_id"`
	Status    Status          `json:"status" db:"status"`
	Total     decimal.Decimal `json:"total" db:"total"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

type OrderNew struct {
	Total decimal.Decimal `json:"total" validate:"gte=0"`
}

type StatusUp struct {
	Status Status `json:"status" validate:"required,oneof=pending paid cancelled"`
}
