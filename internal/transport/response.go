package transport

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type DataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

func Error(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorResponse{Error: msg})
}

func Data(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, DataResponse{Message: msg, Data: data})
}

func Auth(c echo.Context, code int, msg, token string, user models.PublicUser) error {
	return c.JSON(code, AuthResponse{Message: msg, Token: token, User: user})
}
