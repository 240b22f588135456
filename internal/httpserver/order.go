package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/mykafka"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

// currentUserID reads the identity the auth middleware attached.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	s, ok := c.Get("user_id").(string)
	if !ok || s == "" {
		return primitive.NilObjectID, errors.New("unauthorized")
	}
	userID, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, errors.New("unauthorized")
	}
	return userID, nil
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	userID, err := currentUserID(c)
	if err != nil {
		l.Warn("get_orders_error", "status", 401, "reason", "missing identity")
		return transport.Error(c, http.StatusUnauthorized, "Missing or invalid authorization token")
	}

	orders, err := h.Svc.List(ctx, userID)
	if err != nil {
		l.Error("get_orders_error", "status", 500, "reason", "internal error", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return transport.Data(c, http.StatusOK, "Order history fetched successfully", orders)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := currentUserID(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "reason", "missing identity")
		return transport.Error(c, http.StatusUnauthorized, "Missing or invalid authorization token")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return transport.Error(c, http.StatusBadRequest, "Products array is required and cannot be empty")
	}

	order, err := h.Svc.Create(ctx, userID, req.Products, req.TotalAmount)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return transport.Error(c, http.StatusBadRequest, err.Error())
		}
		l.Error("create_order_error", "status", 500, "reason", "internal error", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	publish(c, h.Producer, "order_events", order.ID.Hex(), map[string]any{
		"type":        "order_created",
		"orderID":     order.ID.Hex(),
		"userID":      userID.Hex(),
		"totalAmount": order.TotalAmount,
	})

	l.Info("create_order_success")
	return transport.Data(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order")

	userID, err := currentUserID(c)
	if err != nil {
		l.Warn("update_order_error", "status", 401, "reason", "missing identity")
		return transport.Error(c, http.StatusUnauthorized, "Missing or invalid authorization token")
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return transport.Error(c, http.StatusBadRequest, "At least one field (products or totalAmount) is required")
	}

	order, err := h.Svc.Update(ctx, userID, c.Param("id"), req.Products, req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
			return transport.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			// absent and not-owned are deliberately the same answer
			l.Warn("update_order_error", "status", 404, "reason", "order not found")
			return transport.Error(c, http.StatusNotFound, "Order not found")
		default:
			l.Error("update_order_error", "status", 500, "reason", "internal error", "error", err)
			return transport.Error(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	publish(c, h.Producer, "order_events", order.ID.Hex(), map[string]any{
		"type":        "order_updated",
		"orderID":     order.ID.Hex(),
		"userID":      userID.Hex(),
		"totalAmount": order.TotalAmount,
	})

	l.Info("update_order_success")
	return transport.Data(c, http.StatusOK, "Order updated successfully", order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	userID, err := currentUserID(c)
	if err != nil {
		l.Warn("delete_order_error", "status", 401, "reason", "missing identity")
		return transport.Error(c, http.StatusUnauthorized, "Missing or invalid authorization token")
	}

	order, err := h.Svc.Delete(ctx, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_order_error", "status", 404, "reason", "order not found")
			return transport.Error(c, http.StatusNotFound, "Order not found")
		}
		l.Error("delete_order_error", "status", 500, "reason", "internal error", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	publish(c, h.Producer, "order_events", order.ID.Hex(), map[string]any{
		"type":    "order_deleted",
		"orderID": order.ID.Hex(),
		"userID":  userID.Hex(),
	})

	l.Info("delete_order_success")
	return transport.Data(c, http.StatusOK, "Order deleted successfully", order)
}
