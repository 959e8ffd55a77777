package availability

import (
	"github.com/labstack/echo/v4"

	"meetgrid/core/cache"
	"meetgrid/core/database"
	"meetgrid/modules/availability/controller"
	"meetgrid/modules/availability/repository"
	"meetgrid/modules/availability/router"
	"meetgrid/modules/availability/service"
	eventrepo "meetgrid/modules/event/repository"
)

// Init initializes the availability module and registers routes. notifier
// may be nil when realtime is disabled; clients then rely on polling.
func Init(e *echo.Echo, db database.IDatabase, notifier cache.Notifier) {
	responses := repository.NewResponseRepository(db)
	events := eventrepo.NewEventRepository(db)
	svc := service.NewAvailabilityService(responses, events, notifier)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e)
}
