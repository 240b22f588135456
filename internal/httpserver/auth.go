package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/mykafka"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return transport.Error(c, http.StatusBadRequest, "Email and password are required")
	}

	res, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
			return transport.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			l.Warn("register_error", "status", 400, "reason", "email already registered")
			return transport.Error(c, http.StatusBadRequest, "User with this email already exists")
		default:
			l.Error("register_error", "status", 500, "reason", "internal error", "error", err)
			return transport.Error(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	publish(c, h.Producer, "user_events", res.User.ID.Hex(), map[string]any{
		"type":   "user_registered",
		"userID": res.User.ID.Hex(),
		"email":  res.User.Email,
	})

	l.Info("register_success")
	return transport.Auth(c, http.StatusCreated, "User registered successfully", res.Token, res.User.Public())
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return transport.Error(c, http.StatusBadRequest, "Email and password are required")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
			return transport.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_error", "status", 401, "reason", "invalid credentials")
			return transport.Error(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			l.Error("login_error", "status", 500, "reason", "internal error", "error", err)
			return transport.Error(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	l.Info("login_success")
	return transport.Auth(c, http.StatusOK, "Login successful", res.Token, res.User.Public())
}
