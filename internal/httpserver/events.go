package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/mykafka"
	"github.com/Skotchmaster/shop_api/internal/search"
)

// Event publishing and search indexing are best effort: failures are
// logged and never fail the request that triggered them.

func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx := c.Request().Context()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}

func index(c echo.Context, ix *search.Indexer, product models.Product) {
	ctx := c.Request().Context()
	if err := ix.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Error("search_index_error", "productID", product.ID.Hex(), "error", err)
	}
}

func deindex(c echo.Context, ix *search.Indexer, id string) {
	ctx := c.Request().Context()
	if err := ix.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("search_deindex_error", "productID", id, "error", err)
	}
}
