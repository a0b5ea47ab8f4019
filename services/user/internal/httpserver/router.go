package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musicclouds/platform/services/user/internal/domain"
	"github.com/musicclouds/platform/services/user/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	UserHandler *UserHTTP
	Authorizer  *middleware.Authorizer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(d.Authorizer.Authenticate)

	auth := e.Group("/api/v1/users/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh-token", d.AuthHandler.RefreshToken)

	users := e.Group("/api/v1/users", middleware.RequireAuthenticated)
	users.GET("", d.UserHandler.List)
	users.GET("/:id", d.UserHandler.Get)
	users.PUT("/:id", d.UserHandler.Update)
	users.DELETE("/:id", d.UserHandler.Delete, middleware.RequirePermission(domain.PermUserDelete))
}
