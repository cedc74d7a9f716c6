package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	"github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

// Service orchestrates the order bounded context use cases. Every mutating
// operation runs inside one storage transaction: a failure partway leaves
// stock and order state exactly as before the call.
type Service struct {
	orders ports.Repository
	users  ports.UserDirectory
	ledger *Ledger
	tx     ports.Transactor
}

// NewService wires the order service with its collaborators.
func NewService(orders ports.Repository, users ports.UserDirectory, books ports.BookCatalog, tx ports.Transactor) *Service {
	return &Service{
		orders: orders,
		users:  users,
		ledger: NewLedger(books),
		tx:     tx,
	}
}

// CreateOrder builds and persists an order for the given user. Lines are
// processed in request order; any short line aborts the whole call and rolls
// back every reservation already made for earlier lines.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	var saved *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		buyer, err := s.users.GetByID(ctx, input.UserID)
		if err != nil {
			return err
		}
		order, err := domain.NewOrder(buyer.ID, buyer.Username, input.ShippingAddress)
		if err != nil {
			return mapError(err)
		}
		for _, line := range input.Items {
			book, err := s.ledger.Reserve(ctx, line.BookID, line.Quantity)
			if err != nil {
				return err
			}
			if err := order.AddLine(book.ID, book.Title, book.Price, line.Quantity); err != nil {
				return mapError(err)
			}
		}
		order.OrderNumber = newOrderNumber()
		saved, err = s.orders.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetOrder loads a single order with its items.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListByUser returns the orders owned by one user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListByStatus returns orders currently in the given status.
func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return s.orders.ListByStatus(ctx, status)
}

// ListAll returns every order. Privileged; the transport layer gates it.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// UpdateStatus applies the unrestricted status write. Items and total are
// never touched; repeating the same status is a no-op apart from updatedAt.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	var saved *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.SetStatus(status); err != nil {
			return mapError(err)
		}
		saved, err = s.orders.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// CancelOrder restores every line's stock and marks the order cancelled, all
// in one atomic unit. Delivered orders cannot be cancelled. Cancelling an
// already-cancelled order releases the stock again; see the regression test.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var saved *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !order.CanCancel() {
			return domain.ErrCancelDelivered
		}
		for _, item := range order.Items {
			if err := s.ledger.Release(ctx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		saved, err = s.orders.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16]))
}

var _ ports.Service = (*Service)(nil)
