package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionUnpaid    TransactionStatus = "UNPAID"
	TransactionPaid      TransactionStatus = "PAID"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a settled order. Its lines are a price snapshot and never change; only the
// status and payment references move.
type Transaction struct {
	ID              string            `gorm:"primaryKey;size:36;not null" json:"id"`
	UserID          string            `gorm:"size:64;index;not null" json:"user_id"`
	InvoiceNumber   string            `gorm:"size:32;uniqueIndex;not null" json:"invoice_number"`
	Items           []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status          TransactionStatus `gorm:"size:16;index;not null" json:"status"`
	PaymentMethodID *string           `gorm:"size:36;index" json:"payment_method_id,omitempty"`
	PaymentID       *string           `gorm:"size:36;index" json:"payment_id,omitempty"`
	ShippingAddress string            `gorm:"size:512" json:"shipping_address,omitempty"`
	Notes           string            `gorm:"size:512" json:"notes,omitempty"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	CancelledAt     *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type TransactionItem struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	TransactionID string          `gorm:"size:36;index;not null" json:"-"`
	ItemID        string          `gorm:"size:36;index;not null" json:"item_id"`
	ItemName      string          `gorm:"size:128;not null" json:"item_name"`
	Qty           int64           `gorm:"not null" json:"qty"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// CanCancel reports whether the owner may still cancel the transaction.
func (t *Transaction) CanCancel() error {
	if t.Status != TransactionPending {
		return ErrTransactionNotPending
	}
	return nil
}

// CanPay reports whether the transaction may be included in a payment.
func (t *Transaction) CanPay() error {
	switch t.Status {
	case TransactionPending, TransactionUnpaid:
		return nil
	case TransactionPaid:
		return ErrTransactionAlreadyPaid
	default:
		return ErrTransactionCancelled
	}
}

// NewTransactionItem snapshots the item's current price for qty units.
func NewTransactionItem(item *Item, qty int64) TransactionItem {
	return TransactionItem{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Qty:       qty,
		UnitPrice: item.Price,
		Subtotal:  item.Price.Mul(decimal.NewFromInt(qty)),
	}
}

func SumLines(lines []TransactionItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

type TransactionFilter struct {
	UserID string
	Status TransactionStatus
	Page   Page
}
