package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
	Failed    Status = "failed"
	Refunded  Status = "refunded"
)

// Payment records an amount paid against an order. No provider is called.
type Payment struct {
	ID        string          `json:"id" db:"payment_id"`
	OrderID   string          `json:"orderId" db:"order_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    string          `json:"method" db:"method"`
	Status    Status          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

type PaymentNew struct {
	OrderID string          `json:"orderId" validate:"required,uuid"`
	Amount  decimal.Decimal `json:"amount" validate:"gt=0"`
	Method  string          `json:"method" validate:"required,oneof=card transfer cash"`
}

type StatusUp struct {
	Status Status `json:"status" validate:"required,oneof=pending completed failed refunded"`
}
