package model

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error is a domain error whose message is safe to show to API callers.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidQuantity      = &Error{Kind: KindValidation, Message: "quantity must be greater than 0"}
	ErrInvalidMovementType  = &Error{Kind: KindValidation, Message: "type must be IN or OUT"}
	ErrInvalidReason        = &Error{Kind: KindValidation, Message: "invalid stock history reason"}
	ErrInvalidPrice         = &Error{Kind: KindValidation, Message: "price cannot be negative"}
	ErrInvalidPriceScale    = &Error{Kind: KindValidation, Message: "price cannot have more than two decimal places"}
	ErrInvalidItem          = &Error{Kind: KindValidation, Message: "item id is required"}
	ErrInvalidItemName      = &Error{Kind: KindValidation, Message: "item name is required"}
	ErrInvalidItemStatus    = &Error{Kind: KindValidation, Message: "status must be active or inactive"}
	ErrInvalidBucket        = &Error{Kind: KindValidation, Message: "bucket must be day, week or month"}
	ErrInvalidDateRange     = &Error{Kind: KindValidation, Message: "from must not be after to"}
	ErrCartEmpty            = &Error{Kind: KindValidation, Message: "cart is empty"}
	ErrNoTransactions       = &Error{Kind: KindValidation, Message: "at least one transaction id is required"}
	ErrNoLines              = &Error{Kind: KindValidation, Message: "at least one line item is required"}
	ErrMissingUser          = &Error{Kind: KindValidation, Message: "user id is required"}
	ErrMissingPaymentMethod = &Error{Kind: KindValidation, Message: "payment method id is required"}
	ErrMissingShipping      = &Error{Kind: KindValidation, Message: "shipping address is required"}
	ErrTransactionMismatch  = &Error{Kind: KindValidation, Message: "some transactions were not found"}

	ErrItemNotFound          = &Error{Kind: KindNotFound, Message: "item not found"}
	ErrPaymentMethodNotFound = &Error{Kind: KindNotFound, Message: "payment method not found"}
	ErrTransactionNotFound   = &Error{Kind: KindNotFound, Message: "transaction not found"}
	ErrPaymentNotFound       = &Error{Kind: KindNotFound, Message: "payment not found"}
	ErrCartItemNotFound      = &Error{Kind: KindNotFound, Message: "item is not in the cart"}
	ErrCartNotFound          = &Error{Kind: KindNotFound, Message: "cart not found"}

	ErrItemInactive             = &Error{Kind: KindConflict, Message: "item is not available"}
	ErrPaymentMethodInactive    = &Error{Kind: KindConflict, Message: "payment method is not active"}
	ErrTransactionNotPending    = &Error{Kind: KindConflict, Message: "only pending orders can be cancelled"}
	ErrTransactionAlreadyPaid   = &Error{Kind: KindConflict, Message: "transaction is already paid"}
	ErrTransactionCancelled     = &Error{Kind: KindConflict, Message: "transaction is cancelled"}
	ErrTransactionOwnerMismatch = &Error{Kind: KindConflict, Message: "transactions do not belong to the given user"}

	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "missing or invalid token"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "admin access required"}
)

// InsufficientStockError reports a line whose requested quantity exceeds the folded stock.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	name := e.ItemName
	if name == "" {
		name = e.ItemID
	}
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, e.Available, e.Requested)
}

// KindOf classifies err, looking through wrapped errors.
func KindOf(err error) ErrorKind {
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return KindConflict
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	return KindUnknown
}
