package model

import "time"

type StockReason string

const (
	ReasonRestock    StockReason = "restock"
	ReasonSold       StockReason = "sold"
	ReasonPurchased  StockReason = "purchased"
	ReasonDamaged    StockReason = "damaged"
	ReasonCorrection StockReason = "correction"
	ReasonReturn     StockReason = "return"
	ReasonInitial    StockReason = "initial"
	ReasonOther      StockReason = "other"
)

func (r StockReason) Valid() bool {
	switch r {
	case ReasonRestock, ReasonSold, ReasonPurchased, ReasonDamaged,
		ReasonCorrection, ReasonReturn, ReasonInitial, ReasonOther:
		return true
	}
	return false
}

type ReferenceType string

const (
	ReferenceTransaction ReferenceType = "transaction"
	ReferenceOrder       ReferenceType = "order"
	ReferenceManual      ReferenceType = "manual"
	ReferenceSystem      ReferenceType = "system"
)

type ActorType string

const (
	ActorUser  ActorType = "User"
	ActorAdmin ActorType = "Admin"
)

// Actor is whoever caused a stock change: a storefront user or a back-office admin.
type Actor struct {
	ID   string    `gorm:"column:actor_id;size:64" json:"actor_id"`
	Type ActorType `gorm:"column:actor_type;size:8" json:"actor_type"`
	Name string    `gorm:"column:name;size:128" json:"name"`
}

func UserActor(id, name string) Actor {
	return Actor{ID: id, Type: ActorUser, Name: name}
}

func AdminActor(id, name string) Actor {
	return Actor{ID: id, Type: ActorAdmin, Name: name}
}

func (a Actor) IsAdmin() bool {
	return a.Type == ActorAdmin
}

// StockHistory is written once, next to the movement it describes. The stock snapshots are
// taken from the fold at write time.
type StockHistory struct {
	ID            string        `gorm:"primaryKey;size:36;not null" json:"id"`
	ItemID        string        `gorm:"size:36;index;not null" json:"item_id"`
	MovementID    string        `gorm:"size:36;index" json:"movement_id"`
	Type          MovementType  `gorm:"size:3;not null" json:"type"`
	Quantity      int64         `gorm:"not null" json:"quantity"`
	Reason        StockReason   `gorm:"size:16;index;not null" json:"reason"`
	Note          string        `gorm:"size:255" json:"note"`
	PreviousStock int64         `gorm:"not null" json:"previous_stock"`
	NewStock      int64         `gorm:"not null" json:"new_stock"`
	PerformedBy   Actor         `gorm:"embedded;embeddedPrefix:performed_by_" json:"performed_by"`
	ReferenceType ReferenceType `gorm:"size:16;not null" json:"reference_type"`
	ReferenceID   string        `gorm:"size:36;index" json:"reference_id,omitempty"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
}

type ReasonBreakdown struct {
	Reason        StockReason `json:"reason"`
	TotalQuantity int64       `json:"total_quantity"`
	Count         int64       `json:"count"`
}
