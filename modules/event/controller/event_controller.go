package controller

import (
	"github.com/labstack/echo/v4"

	"meetgrid/core/controller"
	"meetgrid/core/errors"
	"meetgrid/modules/event/dto"
	"meetgrid/modules/event/service"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// CreateEvent handles POST /events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:code
func (c *EventController) GetEvent(ctx echo.Context) error {
	code := ctx.Param("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Event code is required")
	}

	result, appErr := c.EventService.GetEventByCode(ctx.Request().Context(), code, ctx.QueryParam("tz"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteEvent handles DELETE /events/:code
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	code := ctx.Param("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Event code is required")
	}

	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), code); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}
