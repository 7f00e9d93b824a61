package model

import "time"

type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

func (t MovementType) Valid() bool {
	return t == MovementIn || t == MovementOut
}

// StockMovement is one append-only ledger entry. Quantity is always a positive magnitude;
// the direction lives in Type.
type StockMovement struct {
	ID        string       `gorm:"primaryKey;size:36;not null" json:"id"`
	ItemID    string       `gorm:"size:36;index;not null" json:"item_id"`
	Quantity  int64        `gorm:"not null" json:"quantity"`
	Type      MovementType `gorm:"size:3;not null" json:"type"`
	Note      string       `gorm:"size:255" json:"note"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
}

func (m *StockMovement) Validate() error {
	if m.ItemID == "" {
		return ErrInvalidItem
	}
	if m.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !m.Type.Valid() {
		return ErrInvalidMovementType
	}
	return nil
}

// Signed returns the quantity with the sign of its direction.
func (m *StockMovement) Signed() int64 {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// Fold is the current stock of the movements' item: sum of IN minus sum of OUT.
// The result is never clamped.
func Fold(movements []StockMovement) int64 {
	var stock int64
	for i := range movements {
		stock += movements[i].Signed()
	}
	return stock
}

// Apply returns the stock after a movement of quantity in direction t.
func Apply(stock int64, t MovementType, quantity int64) int64 {
	if t == MovementOut {
		return stock - quantity
	}
	return stock + quantity
}

type StockLevel struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Size   string `json:"size"`
	Stock  int64  `json:"stock"`
}
