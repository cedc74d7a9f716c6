package bookstoreserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/bookworks/bookstore-api/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /api/orders
// Place a new order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.placeOrder(c.Request.Context(), orderhttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input orderports.CreateOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Get /api/orders/:orderId
// Find order by ID
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders/user/:userId
// List the orders one user has placed
func (api *OrdersAPI) ListOrdersByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	orders, err := api.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/status/:status
// List orders currently in the given status
func (api *OrdersAPI) ListOrdersByStatus(c *gin.Context) {
	status, err := orderdomain.ParseStatus(c.Param("status"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	orders, err := api.service.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/admin/all
// List every order in the system
func (api *OrdersAPI) ListAllOrders(c *gin.Context) {
	orders, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Put /api/orders/:orderId/status?status=SHIPPED
// Set the order status
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	status, err := orderdomain.ParseStatus(c.Query("status"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Post /api/orders/:orderId/cancel
// Cancel an order and release its reserved stock
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
