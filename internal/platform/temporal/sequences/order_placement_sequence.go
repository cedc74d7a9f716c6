package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
	orderactivities "github.com/bookworks/bookstore-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to place an order.
// The placement activity is transactional, so a retried attempt never leaves partial reservations.
func RunOrderPlacementSequence(ctx workflow.Context, input orderports.CreateOrderInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "userId", input.UserID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.InsufficientStockErrorType,
				orderactivities.InvalidOrderErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order orderdomain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
