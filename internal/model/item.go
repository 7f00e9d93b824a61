package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
)

func (s ItemStatus) Valid() bool {
	return s == ItemActive || s == ItemInactive
}

type Item struct {
	ID          string          `gorm:"primaryKey;size:36;not null" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"size:512" json:"description"`
	Size        string          `gorm:"size:32;index" json:"size"` // 3kg, 5.5kg, 12kg, 50kg
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Image       string          `gorm:"size:255" json:"image"`
	Status      ItemStatus      `gorm:"size:16;index;not null" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (i *Item) IsActive() bool {
	return i.Status == ItemActive
}

// ValidatePrice accepts what a decimal(12,2) column stores without rounding.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	if !price.Equal(price.Round(2)) {
		return ErrInvalidPriceScale
	}
	return nil
}

type PaymentMethod struct {
	ID        string    `gorm:"primaryKey;size:36;not null" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Type      string    `gorm:"size:32;not null" json:"type"` // cash, bank_transfer, e_wallet
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
