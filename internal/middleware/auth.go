package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/tokens"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

const bearerPrefix = "Bearer "

// unauthorizedMsg is shared by every rejection path so a client cannot
// tell a missing header from a bad signature or an expired token.
const unauthorizedMsg = "Missing or invalid authorization token"

type Auth struct {
	Tokens *tokens.Service
}

func NewAuth(svc *tokens.Service) *Auth {
	return &Auth{Tokens: svc}
}

func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return transport.Error(c, http.StatusUnauthorized, unauthorizedMsg)
		}

		claims, err := m.Tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return transport.Error(c, http.StatusUnauthorized, unauthorizedMsg)
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		return next(c)
	}
}
