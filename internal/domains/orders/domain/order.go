package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var (
	ErrInvalidBookID     = errors.New("book id must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrCancelDelivered   = errors.New("cannot cancel a delivered order")
	ErrEmptyShippingAddr = errors.New("shipping address is required")
)

// InsufficientStockError reports a reservation that exceeded the available stock.
type InsufficientStockError struct {
	BookID    int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %d: requested %d, available %d", e.BookID, e.Requested, e.Available)
}

// OrderItem is a single order line. The unit price is snapshotted from the book
// at order time and never changes afterwards, even if the catalog price does.
type OrderItem struct {
	ID        int64
	BookID    int64
	BookTitle string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Order models the purchase order aggregate. It exclusively owns its items:
// they are created with the order and deleted with it, never shared.
type Order struct {
	ID              int64
	OrderNumber     string
	UserID          int64
	Username        string
	ShippingAddress string
	Status          Status
	TotalAmount     decimal.Decimal
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder starts an empty pending order for the given buyer.
func NewOrder(userID int64, username, shippingAddress string) (*Order, error) {
	if shippingAddress == "" {
		return nil, ErrEmptyShippingAddr
	}
	return &Order{
		UserID:          userID,
		Username:        username,
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
		TotalAmount:     decimal.Zero,
	}, nil
}

// AddLine appends an order line, snapshotting the unit price and keeping the
// running total equal to the sum of subtotals.
func (o *Order) AddLine(bookID int64, bookTitle string, unitPrice decimal.Decimal, quantity int) error {
	if bookID <= 0 {
		return ErrInvalidBookID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	o.Items = append(o.Items, OrderItem{
		BookID:    bookID,
		BookTitle: bookTitle,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  subtotal,
	})
	o.TotalAmount = o.TotalAmount.Add(subtotal)
	return nil
}

// SetStatus accepts any known status. The status write is deliberately
// unrestricted; only the cancel path enforces a rule.
func (o *Order) SetStatus(status Status) error {
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// CanCancel reports whether cancellation is allowed from the current status.
func (o *Order) CanCancel() bool {
	return o.Status != StatusDelivered
}

// Cancel marks the order cancelled. Stock restoration is the caller's job and
// must happen in the same transaction.
func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return ErrCancelDelivered
	}
	o.Status = StatusCancelled
	return nil
}

// ParseStatus converts a transport-level status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
