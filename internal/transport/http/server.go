// Package http provides the HTTP server for the chat application.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/coldcanuk/MyChatApp/internal/service"
	v1 "github.com/coldcanuk/MyChatApp/internal/transport/http/v1"
	"github.com/coldcanuk/MyChatApp/web"
)

// NewServer creates and configures the HTTP server: the chat API plus the
// embedded front-end at the root path.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	handler := v1.NewHandler(svc)
	handler.RegisterRoutes(e)

	// Embedded front-end
	e.GET("/*", echo.WrapHandler(web.Handler()))

	return e
}
