package dto

import (
	"lpg-marketplace/internal/model"

	"github.com/shopspring/decimal"
)

type Line struct {
	ItemID string `json:"item_id"`
	Qty    int64  `json:"qty"`
}

// -------- catalog --------

type CreateItemRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Size         string          `json:"size"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Status       string          `json:"status"`
	InitialStock int64           `json:"initial_stock"`
}

// UpdateItemRequest only touches the fields that are set.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Size        *string          `json:"size"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Status      *string          `json:"status"`
}

type CreatePaymentMethodRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active *bool  `json:"active"`
}

// -------- cart --------

type AddCartItemRequest struct {
	ItemID string `json:"item_id"`
	Qty    int64  `json:"qty"`
}

type UpdateCartItemRequest struct {
	Qty int64 `json:"qty"`
}

type CartResponse struct {
	ID       string           `json:"id,omitempty"`
	UserID   string           `json:"user_id"`
	Items    []model.CartItem `json:"items"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// -------- settlement --------

type CheckoutRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes"`
}

type AdminTransactionRequest struct {
	UserID          string `json:"user_id"`
	Items           []Line `json:"items"`
	PaymentMethodID string `json:"payment_method_id"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes"`
}

type CancelResponse struct {
	Order  *model.Transaction `json:"order"`
	Status string             `json:"status"`
}

type BulkPayRequest struct {
	UserID          string   `json:"user_id"`
	TransactionIDs  []string `json:"transaction_ids"`
	PaymentMethodID string   `json:"payment_method_id"`
	Notes           string   `json:"notes"`
}

// -------- stock --------

type StockChangeRequest struct {
	ItemID   string             `json:"item_id"`
	Quantity int64              `json:"quantity"`
	Type     model.MovementType `json:"type"`
	Reason   model.StockReason  `json:"reason"`
	Note     string             `json:"note"`
}

type StockChangeResult struct {
	Stock         *model.StockMovement `json:"stock"`
	History       *model.StockHistory  `json:"history,omitempty"`
	PreviousStock int64                `json:"previous_stock"`
	NewStock      int64                `json:"new_stock"`
}

// -------- shared --------

type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func NewPageMeta(page model.Page, total int64) *PageMeta {
	page = page.Normalize()
	return &PageMeta{Page: page.Page, Limit: page.Limit, Total: total}
}
