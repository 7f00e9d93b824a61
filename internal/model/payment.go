package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a receipt covering one or more transactions of the same user.
type Payment struct {
	ID              string          `gorm:"primaryKey;size:36;not null" json:"id"`
	ReceiptNumber   string          `gorm:"size:32;uniqueIndex;not null" json:"receipt_number"`
	UserID          string          `gorm:"size:64;index;not null" json:"user_id"`
	PaymentMethodID string          `gorm:"size:36;index;not null" json:"payment_method_id"`
	TransactionIDs  []string        `gorm:"serializer:json;type:text;not null" json:"transaction_ids"`
	TotalPaid       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_paid"`
	Notes           string          `gorm:"size:512" json:"notes,omitempty"`
	CreatedBy       string          `gorm:"size:64" json:"created_by"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
}

const (
	InvoicePrefix = "INV"
	ReceiptPrefix = "RCP"
)

// DocumentSequence holds the last number issued for a prefix on a given day.
type DocumentSequence struct {
	Prefix    string `gorm:"primaryKey;size:8"`
	DateKey   string `gorm:"primaryKey;size:8"`
	Counter   int64  `gorm:"not null"`
	UpdatedAt time.Time
}

func DayKey(t time.Time) string {
	return t.Format("20060102")
}

// FormatDocumentNumber renders PREFIX-YYYYMMDD-NNNNNN.
func FormatDocumentNumber(prefix, day string, seq int64) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, day, seq)
}
