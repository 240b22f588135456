package httpserver

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/search"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

const defaultSearchSize = 20

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	if h.ES == nil {
		return transport.Error(c, http.StatusServiceUnavailable, "Search is not available")
	}

	q := c.QueryParam("q")
	if q == "" {
		return transport.Error(c, http.StatusBadRequest, "Query parameter q is required")
	}

	from := parseIntDefault(c.QueryParam("from"), 0)
	size := parseIntDefault(c.QueryParam("size"), defaultSearchSize)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_error", "status", 500, "reason", "search failed", "error", err)
		return transport.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return transport.Data(c, http.StatusOK, "Products fetched successfully", map[string]any{
		"total":    total,
		"products": products,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
