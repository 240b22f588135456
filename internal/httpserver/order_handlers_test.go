package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrders_RequireToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodPut, "/api/orders/507f1f77bcf86cd799439011"},
		{http.MethodDelete, "/api/orders/507f1f77bcf86cd799439011"},
	} {
		rec := env.do(req.method, req.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.method, req.path)
		assert.Equal(t, "Missing or invalid authorization token", env.decode(rec)["error"])
	}
}

func TestCreateOrder_RoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, userID := env.register("user@example.com", "password")
	productID := env.addProduct("laptop", 999.99)

	rec := env.do(http.MethodPost, "/api/orders", token, map[string]any{
		"products":    []string{productID},
		"totalAmount": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := env.decode(rec)
	assert.Equal(t, "Order created successfully", resp["message"])
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)

	user, _ := data["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, userID, user["_id"])
	assert.Equal(t, "user@example.com", user["email"])

	products, _ := data["products"].([]any)
	require.Len(t, products, 1)
	p, _ := products[0].(map[string]any)
	assert.Equal(t, productID, p["_id"])
	assert.Equal(t, "laptop", p["name"])
	assert.Equal(t, 999.99, p["price"])
	assert.Equal(t, 100.0, data["totalAmount"])

	// an immediate fetch returns the same expanded record
	recList := env.do(http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, recList.Code)
	listResp := env.decode(recList)
	assert.Equal(t, "Order history fetched successfully", listResp["message"])
	list, _ := listResp["data"].([]any)
	require.Len(t, list, 1)
	got, _ := list[0].(map[string]any)
	assert.Equal(t, data["_id"], got["_id"])
	assert.Equal(t, 100.0, got["totalAmount"])
	gotProducts, _ := got["products"].([]any)
	require.Len(t, gotProducts, 1)
}

func TestCreateOrder_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := env.register("user@example.com", "password")
	productID := env.addProduct("laptop", 999.99)

	tests := []struct {
		name    string
		body    map[string]any
		wantMsg string
	}{
		{name: "missing products", body: map[string]any{"totalAmount": 100.0}, wantMsg: "Products array is required and cannot be empty"},
		{name: "empty products", body: map[string]any{"products": []string{}, "totalAmount": 100.0}, wantMsg: "Products array is required and cannot be empty"},
		{name: "missing totalAmount", body: map[string]any{"products": []string{productID}}, wantMsg: "Valid totalAmount is required"},
		{name: "negative totalAmount", body: map[string]any{"products": []string{productID}, "totalAmount": -1.0}, wantMsg: "Valid totalAmount is required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/orders", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, env.decode(rec)["error"])
		})
	}
}

func TestOrders_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tokenA, _ := env.register("a@example.com", "password")
	tokenB, _ := env.register("b@example.com", "password")
	productID := env.addProduct("laptop", 999.99)

	rec := env.do(http.MethodPost, "/api/orders", tokenA, map[string]any{
		"products":    []string{productID},
		"totalAmount": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data, _ := env.decode(rec)["data"].(map[string]any)
	orderID, _ := data["_id"].(string)
	require.NotEmpty(t, orderID)

	// user B cannot see, change or delete A's order and cannot tell
	// it exists
	recList := env.do(http.MethodGet, "/api/orders", tokenB, nil)
	require.Equal(t, http.StatusOK, recList.Code)
	list, _ := env.decode(recList)["data"].([]any)
	assert.Empty(t, list)

	recPut := env.do(http.MethodPut, "/api/orders/"+orderID, tokenB, map[string]any{"totalAmount": 1.0})
	require.Equal(t, http.StatusNotFound, recPut.Code)
	assert.Equal(t, "Order not found", env.decode(recPut)["error"])

	recDel := env.do(http.MethodDelete, "/api/orders/"+orderID, tokenB, nil)
	require.Equal(t, http.StatusNotFound, recDel.Code)
	assert.Equal(t, "Order not found", env.decode(recDel)["error"])

	// the owner's requests still succeed
	recOwn := env.do(http.MethodPut, "/api/orders/"+orderID, tokenA, map[string]any{"totalAmount": 150.0})
	require.Equal(t, http.StatusOK, recOwn.Code)

	recOwnDel := env.do(http.MethodDelete, "/api/orders/"+orderID, tokenA, nil)
	require.Equal(t, http.StatusOK, recOwnDel.Code)
	assert.Equal(t, "Order deleted successfully", env.decode(recOwnDel)["message"])
}

func TestUpdateOrder_Partial(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := env.register("user@example.com", "password")
	p1 := env.addProduct("laptop", 999.99)
	p2 := env.addProduct("mouse", 19.99)

	rec := env.do(http.MethodPost, "/api/orders", token, map[string]any{
		"products":    []string{p1},
		"totalAmount": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data, _ := env.decode(rec)["data"].(map[string]any)
	orderID, _ := data["_id"].(string)

	// amount only: products stay
	recPut := env.do(http.MethodPut, "/api/orders/"+orderID, token, map[string]any{"totalAmount": 200.0})
	require.Equal(t, http.StatusOK, recPut.Code)
	updated, _ := env.decode(recPut)["data"].(map[string]any)
	require.NotNil(t, updated)
	assert.Equal(t, 200.0, updated["totalAmount"])
	products, _ := updated["products"].([]any)
	require.Len(t, products, 1)
	p, _ := products[0].(map[string]any)
	assert.Equal(t, p1, p["_id"])

	// products only: amount stays
	recPut = env.do(http.MethodPut, "/api/orders/"+orderID, token, map[string]any{"products": []string{p2}})
	require.Equal(t, http.StatusOK, recPut.Code)
	updated, _ = env.decode(recPut)["data"].(map[string]any)
	require.NotNil(t, updated)
	assert.Equal(t, 200.0, updated["totalAmount"])
	products, _ = updated["products"].([]any)
	require.Len(t, products, 1)
	p, _ = products[0].(map[string]any)
	assert.Equal(t, p2, p["_id"])
}

func TestUpdateOrder_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := env.register("user@example.com", "password")
	productID := env.addProduct("laptop", 999.99)

	rec := env.do(http.MethodPost, "/api/orders", token, map[string]any{
		"products":    []string{productID},
		"totalAmount": 100.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data, _ := env.decode(rec)["data"].(map[string]any)
	orderID, _ := data["_id"].(string)

	recPut := env.do(http.MethodPut, "/api/orders/"+orderID, token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, recPut.Code)
	assert.Equal(t, "At least one field (products or totalAmount) is required", env.decode(recPut)["error"])

	recPut = env.do(http.MethodPut, "/api/orders/"+orderID, token, map[string]any{"totalAmount": -1.0})
	require.Equal(t, http.StatusBadRequest, recPut.Code)
	assert.Equal(t, "Valid totalAmount is required", env.decode(recPut)["error"])
}

func TestOrders_MalformedID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := env.register("user@example.com", "password")

	rec := env.do(http.MethodPut, "/api/orders/not-an-id", token, map[string]any{"totalAmount": 1.0})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", env.decode(rec)["error"])

	rec = env.do(http.MethodDelete, "/api/orders/not-an-id", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", env.decode(rec)["error"])
}
