package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ecommerce-api/internal/config"
	"github.com/iliyamo/ecommerce-api/internal/queue"
	"github.com/iliyamo/ecommerce-api/internal/repository"
)

// OrderHandler owns the order listings and the admin status update.
type OrderHandler struct {
	Cfg    config.Config
	Orders OrderStore
	Log    *zap.Logger
}

func NewOrderHandler(cfg config.Config, orders OrderStore, log *zap.Logger) *OrderHandler {
	return &OrderHandler{Cfg: cfg, Orders: orders, Log: log}
}

// GetOrders handles GET /api/v1/auth/orders: the signed-in buyer's
// orders as a bare array, the shape the dashboard consumes.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByBuyer(ctx, userID)
	if err != nil {
		h.Log.Error("buyer orders failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while getting orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetAllOrders handles GET /api/v1/auth/all-orders: every order newest
// first, admin only.
func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		h.Log.Error("all orders failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while getting orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

type orderStatusReq struct {
	Status string `json:"status"`
}

// OrderStatus handles PUT /api/v1/auth/order-status/:orderId. The new
// status is written as-is and the updated order is returned; a status
// change event is then published off the request path.
func (h *OrderHandler) OrderStatus(c echo.Context) error {
	var req orderStatusReq
	if err := c.Bind(&req); err != nil {
		return failErr(c, http.StatusInternalServerError, "Error while updating order", err)
	}
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return fail(c, http.StatusNotFound, "Order not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return fail(c, http.StatusNotFound, "Order not found")
		}
		h.Log.Error("order status update failed", zap.Error(err))
		return failErr(c, http.StatusInternalServerError, "Error while updating order", err)
	}

	event := queue.OrderStatusChangedEvent{
		OrderID:   order.ID,
		BuyerID:   order.Buyer.ID,
		BuyerName: order.Buyer.Name,
		Status:    order.Status,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue.PublishOrderStatusChanged(pubCtx, h.Cfg.AMQPURL, h.Log, event)
	}()

	return c.JSON(http.StatusOK, order)
}
