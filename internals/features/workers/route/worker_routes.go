package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceservice "diarias_backend/internals/features/attendance/service"
	"diarias_backend/internals/features/workers/controller"
)

// WorkerAdminRoutes mounts operator-facing worker management, including the
// manual suspension override.
func WorkerAdminRoutes(admin fiber.Router, db *gorm.DB, penalties *attendanceservice.PenaltyService) {
	ctl := controller.NewWorkerController(db, penalties)

	workers := admin.Group("/workers")
	workers.Post("/", ctl.Create)
	workers.Get("/", ctl.List)
	workers.Get("/:id", ctl.Get)
	workers.Patch("/:id", ctl.Update)
	workers.Post("/:id/lift-suspension", ctl.LiftSuspension)
}
