package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/middleware"
	"github.com/Skotchmaster/shop_api/internal/search"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/store/storetest"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

type testEnv struct {
	t        *testing.T
	e        *echo.Echo
	users    *storetest.UserMemory
	products *storetest.ProductMemory
	orders   *storetest.OrderMemory
	tokens   *tokens.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:        t,
		e:        echo.New(),
		users:    storetest.NewUserMemory(),
		products: storetest.NewProductMemory(),
		orders:   storetest.NewOrderMemory(),
		tokens:   tokens.NewService([]byte("test-jwt-secret")),
	}

	deps := Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Users: env.users, Tokens: env.tokens}},
		ProductHandler: &ProductHTTP{Svc: &service.ProductService{Products: env.products}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Orders: env.orders, Users: env.users, Products: env.products}},
		SearchHandler:  &SearchHTTP{Index: search.ProductIndex},
		Auth:           middleware.NewAuth(env.tokens),
	}
	Register(env.e, &deps)

	return env
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder) map[string]any {
	env.t.Helper()

	var resp map[string]any
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// register creates a user through the API and returns its token and id.
func (env *testEnv) register(email, password string) (token, userID string) {
	env.t.Helper()

	rec := env.do("POST", "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(env.t, 201, rec.Code)

	resp := env.decode(rec)
	token, _ = resp["token"].(string)
	require.NotEmpty(env.t, token)

	user, _ := resp["user"].(map[string]any)
	require.NotNil(env.t, user)
	userID, _ = user["_id"].(string)
	require.NotEmpty(env.t, userID)
	return token, userID
}

// addProduct seeds a product through the API and returns its id.
func (env *testEnv) addProduct(name string, price float64) string {
	env.t.Helper()

	rec := env.do("POST", "/api/products", "", map[string]any{
		"name":  name,
		"price": price,
	})
	require.Equal(env.t, 201, rec.Code)

	data, _ := env.decode(rec)["data"].(map[string]any)
	require.NotNil(env.t, data)
	id, _ := data["_id"].(string)
	require.NotEmpty(env.t, id)
	return id
}
