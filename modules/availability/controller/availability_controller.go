package controller

import (
	"github.com/labstack/echo/v4"

	"meetgrid/core/controller"
	"meetgrid/core/errors"
	"meetgrid/modules/availability/dto"
	"meetgrid/modules/availability/service"
)

// AvailabilityController handles response and heatmap HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// UpsertResponse handles PUT /events/:code/responses/:name
func (c *AvailabilityController) UpsertResponse(ctx echo.Context) error {
	code := ctx.Param("code")
	name := ctx.Param("name")

	var req dto.UpsertResponseRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.UpsertResponse(ctx.Request().Context(), code, name, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Response saved successfully")
}

// ListResponses handles GET /events/:code/responses
func (c *AvailabilityController) ListResponses(ctx echo.Context) error {
	code := ctx.Param("code")

	result, appErr := c.AvailabilityService.ListResponses(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteResponse handles DELETE /events/:code/responses/:name
func (c *AvailabilityController) DeleteResponse(ctx echo.Context) error {
	code := ctx.Param("code")
	name := ctx.Param("name")

	if appErr := c.AvailabilityService.DeleteResponse(ctx.Request().Context(), code, name); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Response deleted successfully")
}

// GetHeatmap handles GET /events/:code/heatmap
func (c *AvailabilityController) GetHeatmap(ctx echo.Context) error {
	code := ctx.Param("code")

	result, appErr := c.AvailabilityService.GetHeatmap(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
