package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/middleware"
	"pawmart-backend/internal/models"
)

// OrderHandler handles API endpoints related to orders.
type OrderHandler struct {
	orderService core.OrderService
	errorMapper
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc core.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: svc, errorMapper: errorMapper{logger: logger}}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.respond(c, "create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /orders?email=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), middleware.GetPrincipal(c), c.Query("email"))
	if err != nil {
		h.respond(c, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"))
	if err != nil {
		h.respond(c, "get order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.orderService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		h.respond(c, "delete order", err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Order deleted", Data: gin.H{"id": id}})
}

// UpdateOrderStatus handles PATCH /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), middleware.GetPrincipal(c), c.Param("id"), req.Status)
	if err != nil {
		h.respond(c, "update order status", err)
		return
	}
	c.JSON(http.StatusOK, order)
}
