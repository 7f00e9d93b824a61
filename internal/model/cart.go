package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string     `gorm:"primaryKey;size:36;not null" json:"id"`
	UserID    string     `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem lines keep insertion order through the autoincrement id.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    string    `gorm:"size:36;not null;uniqueIndex:idx_cart_item" json:"-"`
	ItemID    string    `gorm:"size:36;not null;uniqueIndex:idx_cart_item" json:"item_id"`
	Qty       int64     `gorm:"not null" json:"qty"`
	Item      *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Subtotal prices the cart with the live item prices. Lines without a loaded item are skipped.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, line := range c.Items {
		if line.Item == nil {
			continue
		}
		total = total.Add(line.Item.Price.Mul(decimal.NewFromInt(line.Qty)))
	}
	return total
}
