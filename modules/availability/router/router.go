package router

import (
	"github.com/labstack/echo/v4"

	"meetgrid/modules/availability/controller"
)

// AvailabilityRouter handles response and heatmap routes
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

// NewAvailabilityRouter creates a new router
func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes under the event resource
func (r *AvailabilityRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	eventRoutes := v1.Group("/events/:code")
	eventRoutes.PUT("/responses/:name", r.AvailabilityController.UpsertResponse)
	eventRoutes.GET("/responses", r.AvailabilityController.ListResponses)
	eventRoutes.DELETE("/responses/:name", r.AvailabilityController.DeleteResponse)
	eventRoutes.GET("/heatmap", r.AvailabilityController.GetHeatmap)
}
