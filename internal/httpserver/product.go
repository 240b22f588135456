package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/mykafka"
	"github.com/Skotchmaster/shop_api/internal/search"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Producer *mykafka.Producer
	Indexer  *search.Indexer
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "internal error", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return transport.Data(c, http.StatusOK, "Products fetched successfully", products)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return transport.Error(c, http.StatusBadRequest, "Name and price are required")
	}

	product, err := h.Svc.Create(ctx, req.Name, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
			return transport.Error(c, http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 500, "reason", "internal error", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	publish(c, h.Producer, "product_events", product.ID.Hex(), map[string]any{
		"type":      "product_created",
		"productID": product.ID.Hex(),
		"name":      product.Name,
	})
	index(c, h.Indexer, *product)

	l.Info("create_product_success")
	return transport.Data(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return transport.Error(c, http.StatusBadRequest, "At least one field (name or price) is required")
	}

	product, err := h.Svc.Update(ctx, c.Param("id"), req.Name, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
			return transport.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_error", "status", 404, "reason", "product not found")
			return transport.Error(c, http.StatusNotFound, "Product not found")
		default:
			l.Error("update_product_error", "status", 500, "reason", "internal error", "error", err)
			return transport.Error(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	publish(c, h.Producer, "product_events", product.ID.Hex(), map[string]any{
		"type":      "product_updated",
		"productID": product.ID.Hex(),
		"name":      product.Name,
	})
	index(c, h.Indexer, *product)

	l.Info("update_product_success")
	return transport.Data(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	product, err := h.Svc.Delete(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_error", "status", 404, "reason", "product not found")
			return transport.Error(c, http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_error", "status", 500, "reason", "internal error", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	publish(c, h.Producer, "product_events", product.ID.Hex(), map[string]any{
		"type":      "product_deleted",
		"productID": product.ID.Hex(),
	})
	deindex(c, h.Indexer, product.ID.Hex())

	l.Info("delete_product_success")
	return transport.Data(c, http.StatusOK, "Product deleted successfully", product)
}
