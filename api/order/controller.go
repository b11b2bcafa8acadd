/*
Package order - orders API controller.
*/
package order

import (
	"net/http"
	"strconv"

	"commerce/api/response"
	orderapp "commerce/application/order"
	"commerce/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller orders HTTP controller.
type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes registers the order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.PlaceOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/customer/:customerId", c.GetCustomerOrders)
		orderGroup.PUT("/:id/status", c.UpdateStatus)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
	}
}

// PlaceOrder handles POST /api/v1/orders.
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	placed, err := c.orderService.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, placed, "order placed successfully")
}

// GetOrder handles GET /api/v1/orders/:id.
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	found, err := c.orderService.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, found, "order retrieved successfully")
}

// ListOrders handles GET /api/v1/orders?skip=0&limit=20.
func (c *Controller) ListOrders(ctx *gin.Context) {
	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	orders, err := c.orderService.ListOrders(ctx.Request.Context(), skip, limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	pagination := response.Pagination{
		Page:     skip/maxInt(limit, 1) + 1,
		PageSize: limit,
		Count:    len(orders),
	}
	response.HandlePaginated(ctx, orders, pagination, "orders retrieved successfully")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// GetCustomerOrders handles GET /api/v1/orders/customer/:customerId.
func (c *Controller) GetCustomerOrders(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.ListCustomerOrders(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// UpdateStatus handles PUT /api/v1/orders/:id/status.
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	updated, err := c.orderService.UpdateStatus(ctx.Request.Context(), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, updated, "order status updated successfully")
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cancelled, err := c.orderService.CancelOrder(ctx.Request.Context(), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cancelled, "order cancelled successfully")
}
