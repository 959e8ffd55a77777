package event

import (
	"github.com/labstack/echo/v4"

	"meetgrid/core/database"
	"meetgrid/modules/event/controller"
	"meetgrid/modules/event/repository"
	"meetgrid/modules/event/router"
	"meetgrid/modules/event/service"
)

// Init initializes the event module and registers routes. The service is
// returned so the worker can schedule the retention sweep against it.
func Init(e *echo.Echo, db database.IDatabase) service.EventServiceInterface {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e)
	return svc
}
