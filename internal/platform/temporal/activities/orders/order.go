package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/bookworks/bookstore-api/internal/domains/orders/application"
	orderdomain "github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName reserves stock and persists an order within one transaction.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// InsufficientStockErrorType marks stock exhaustion as a business failure
	// that retrying cannot fix.
	InsufficientStockErrorType = "InsufficientStock"
	// InvalidOrderErrorType marks rejected input as non-retryable.
	InvalidOrderErrorType = "InvalidOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder creates an order and returns the persisted aggregate.
func (a *Activities) PlaceOrder(ctx context.Context, input orderports.CreateOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "userId", input.UserID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID, "lines", len(input.Items))
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, classifyPlacementError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return order, nil
}

// classifyPlacementError converts business rejections into non-retryable
// application errors so the workflow fails fast instead of retrying.
func classifyPlacementError(err error) error {
	var stockErr *orderdomain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return temporal.NewNonRetryableApplicationError(err.Error(), InsufficientStockErrorType, err)
	}
	if errors.Is(err, orderapp.ErrInvalidInput) ||
		errors.Is(err, orderports.ErrBookNotFound) ||
		errors.Is(err, orderports.ErrUserNotFound) {
		return temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderErrorType, err)
	}
	return err
}
