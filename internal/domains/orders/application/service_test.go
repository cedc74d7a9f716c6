package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bookworks/bookstore-api/internal/domains/orders/adapters/memory"
	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	"github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedUser(ports.Buyer{ID: 1, Username: "alice"})
	store.SeedBook(ports.BookRef{ID: 10, Title: "Go in Action", Price: decimal.RequireFromString("5.00"), Stock: 20})
	store.SeedBook(ports.BookRef{ID: 11, Title: "The Go Programming Language", Price: decimal.RequireFromString("3.00"), Stock: 20})
	return NewService(store, store.Users(), store, store), store
}

func TestCreateOrder_TwoLines(t *testing.T) {
	svc, store := newTestService(t)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
		Items: []ports.LineRequest{
			{BookID: 10, Quantity: 2},
			{BookID: 11, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	require.NotEmpty(t, order.OrderNumber)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, "alice", order.Username)

	require.Len(t, order.Items, 2)
	require.True(t, order.Items[0].Subtotal.Equal(decimal.RequireFromString("10.00")))
	require.True(t, order.Items[1].Subtotal.Equal(decimal.RequireFromString("3.00")))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("13.00")))

	require.Equal(t, 18, store.StockOf(10))
	require.Equal(t, 19, store.StockOf(11))
}

func TestCreateOrder_StockScenario(t *testing.T) {
	svc, store := newTestService(t)
	store.SeedBook(ports.BookRef{ID: 20, Title: "B", Price: decimal.RequireFromString("9.99"), Stock: 10})

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
		Items:           []ports.LineRequest{{BookID: 20, Quantity: 3}},
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("29.97")))
	require.Equal(t, 7, store.StockOf(20))

	_, err = svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
		Items:           []ports.LineRequest{{BookID: 20, Quantity: 8}},
	})
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	require.Equal(t, int64(20), short.BookID)
	require.Equal(t, 8, short.Requested)
	require.Equal(t, 7, short.Available)
	require.Equal(t, 7, store.StockOf(20))
}

func TestCreateOrder_ShortLineRollsBackEarlierReservations(t *testing.T) {
	svc, store := newTestService(t)
	store.SeedBook(ports.BookRef{ID: 12, Title: "Scarce", Price: decimal.RequireFromString("7.50"), Stock: 1})

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
		Items: []ports.LineRequest{
			{BookID: 10, Quantity: 5},
			{BookID: 11, Quantity: 5},
			{BookID: 12, Quantity: 2},
		},
	})
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)

	// All-or-nothing: lines 1 and 2 were reserved first, then rolled back.
	require.Equal(t, 20, store.StockOf(10))
	require.Equal(t, 20, store.StockOf(11))
	require.Equal(t, 1, store.StockOf(12))

	orders, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrder_UnknownUserAndBook(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: 99, ShippingAddress: "1 Main St",
	})
	require.ErrorIs(t, err, ports.ErrUserNotFound)

	_, err = svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
		Items:           []ports.LineRequest{{BookID: 404, Quantity: 1}},
	})
	require.ErrorIs(t, err, ports.ErrBookNotFound)
}

func TestCreateOrder_EmptyLinesProduceZeroTotalOrder(t *testing.T) {
	svc, _ := newTestService(t)

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)
	require.Empty(t, order.Items)
	require.True(t, order.TotalAmount.IsZero())
	require.Equal(t, domain.StatusPending, order.Status)
}

func TestUpdateStatus_UnrestrictedAndIdempotentOnLines(t *testing.T) {
	svc, _ := newTestService(t)
	order := mustCreate(t, svc, ports.LineRequest{BookID: 10, Quantity: 2})

	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusShipped)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Status)

	// Backwards write is accepted: the generic status update has no table.
	updated, err = svc.UpdateStatus(context.Background(), order.ID, domain.StatusPending)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, updated.Status)

	again, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusPending)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, again.Status)
	require.Len(t, again.Items, len(order.Items))
	require.True(t, again.TotalAmount.Equal(order.TotalAmount))

	_, err = svc.UpdateStatus(context.Background(), order.ID, "MISPLACED")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = svc.UpdateStatus(context.Background(), 404, domain.StatusShipped)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	svc, store := newTestService(t)
	order := mustCreate(t, svc,
		ports.LineRequest{BookID: 10, Quantity: 2},
		ports.LineRequest{BookID: 11, Quantity: 3},
	)
	require.Equal(t, 18, store.StockOf(10))
	require.Equal(t, 17, store.StockOf(11))

	cancelled, err := svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, 20, store.StockOf(10))
	require.Equal(t, 20, store.StockOf(11))
	require.True(t, cancelled.TotalAmount.Equal(order.TotalAmount))
}

func TestCancelOrder_DeliveredIsRejectedWithoutStockChange(t *testing.T) {
	svc, store := newTestService(t)
	order := mustCreate(t, svc, ports.LineRequest{BookID: 10, Quantity: 4})
	_, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusDelivered)
	require.NoError(t, err)

	_, err = svc.CancelOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrCancelDelivered)
	require.Equal(t, 16, store.StockOf(10))

	reloaded, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, reloaded.Status)
}

// Cancelling twice releases the stock twice. This documents the behavior of
// the current cancellation policy, which has no idempotency guard; callers
// must not retry a completed cancel.
func TestCancelOrder_RepeatedCancelReleasesStockAgain(t *testing.T) {
	svc, store := newTestService(t)
	order := mustCreate(t, svc, ports.LineRequest{BookID: 10, Quantity: 5})
	require.Equal(t, 15, store.StockOf(10))

	_, err := svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, 20, store.StockOf(10))

	_, err = svc.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, 25, store.StockOf(10))
}

func TestListOrders(t *testing.T) {
	svc, store := newTestService(t)
	store.SeedUser(ports.Buyer{ID: 2, Username: "bob"})

	first := mustCreate(t, svc, ports.LineRequest{BookID: 10, Quantity: 1})
	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          2,
		ShippingAddress: "2 Side St",
		Items:           []ports.LineRequest{{BookID: 11, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), first.ID, domain.StatusShipped)
	require.NoError(t, err)

	mine, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, first.ID, mine[0].ID)

	shipped, err := svc.ListByStatus(context.Background(), domain.StatusShipped)
	require.NoError(t, err)
	require.Len(t, shipped, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}

// Concurrent orders against one book must never oversubscribe its stock.
func TestCreateOrder_ConcurrentReservationsDoNotOversell(t *testing.T) {
	svc, store := newTestService(t)
	store.SeedBook(ports.BookRef{ID: 30, Title: "Hot", Price: decimal.RequireFromString("1.00"), Stock: 10})

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOrder(context.Background(), ports.CreateOrderInput{
				UserID:          1,
				ShippingAddress: "1 Main St",
				Items:           []ports.LineRequest{{BookID: 30, Quantity: 3}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var short *domain.InsufficientStockError
		require.ErrorAs(t, err, &short)
	}
	require.Equal(t, 3, succeeded)
	require.Equal(t, 1, store.StockOf(30))
}

func mustCreate(t *testing.T, svc *Service, lines ...ports.LineRequest) *domain.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:          1,
		ShippingAddress: "1 Main St",
		Items:           lines,
	})
	require.NoError(t, err)
	return order
}
