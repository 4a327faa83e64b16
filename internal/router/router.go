package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campsite-reservation/internal/handler"
)

// RegisterRoutes wires the health check and the reservation endpoints
// onto the provided Echo instance.  The optional middleware (the rate
// limiter) is applied to the whole /reservation group.
func RegisterRoutes(e *echo.Echo, h *handler.ReservationHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/reservation", mw...)
	g.POST("", h.Create)
	// The static availability route must be registered alongside the
	// parameterized :id routes; Echo resolves it first.
	g.GET("/availability", h.Availability)
	g.GET("/:id", h.FindByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
