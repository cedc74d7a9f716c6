package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	orderdomain "github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

// CreateOrderRequest is the transport payload for placing an order.
type CreateOrderRequest struct {
	UserID          int64              `json:"userId"`
	ShippingAddress string             `json:"shippingAddress"`
	Items           []OrderItemRequest `json:"items"`
}

// OrderItem is the transport shape of a priced order line.
type OrderItem struct {
	ID        int64           `json:"id"`
	BookID    int64           `json:"bookId"`
	BookTitle string          `json:"bookTitle"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is the transport shape of an order aggregate.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          int64           `json:"userId"`
	Username        string          `json:"username"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToCreateOrderInput converts the transport payload into the service input.
func ToCreateOrderInput(request CreateOrderRequest) orderports.CreateOrderInput {
	items := make([]orderports.LineRequest, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, orderports.LineRequest{BookID: item.BookID, Quantity: item.Quantity})
	}
	return orderports.CreateOrderInput{
		UserID:          request.UserID,
		ShippingAddress: request.ShippingAddress,
		Items:           items,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return Order{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		Username:        order.Username,
		ShippingAddress: order.ShippingAddress,
		Status:          string(order.Status),
		TotalAmount:     order.TotalAmount,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// FromDomainOrders converts a slice of domain orders to transport representation.
func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
