package ports

import (
	"context"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator starts the durable order placement flow. Implementations
// may run it inline or hand it to a workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
}
