package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/tokens"
)

func doRequest(t *testing.T, mw *Auth, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoked := false
	handler := mw.RequireAuth(func(c echo.Context) error {
		invoked = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, invoked
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	svc := tokens.NewService([]byte("test-jwt-secret"))
	token, err := svc.Issue("507f1f77bcf86cd799439011", "user@example.com")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewAuth(svc)
	handler := mw.RequireAuth(func(c echo.Context) error {
		assert.Equal(t, "507f1f77bcf86cd799439011", c.Get("user_id"))
		assert.Equal(t, "user@example.com", c.Get("email"))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_RejectionsAreUniform(t *testing.T) {
	t.Parallel()

	svc := tokens.NewService([]byte("test-jwt-secret"))
	otherToken, err := tokens.NewService([]byte("other-secret")).Issue("507f1f77bcf86cd799439011", "user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bare token without scheme", header: "not-a-token"},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "token signed with another secret", header: "Bearer " + otherToken},
	}

	var bodies []string
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec, invoked := doRequest(t, NewAuth(svc), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, invoked, "downstream handler must not run")

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
			bodies = append(bodies, rec.Body.String())
		})
	}

	// every rejection carries byte-identical body
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}
