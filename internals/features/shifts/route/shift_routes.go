package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"diarias_backend/internals/features/shifts/controller"
	"diarias_backend/internals/features/shifts/repository"
	"diarias_backend/internals/features/shifts/service"
	"diarias_backend/internals/middlewares"
)

// ShiftUserRoutes mounts the worker-facing enrollment surface.
func ShiftUserRoutes(user fiber.Router, db *gorm.DB) {
	svc := service.NewEnrollmentService(repository.NewShiftRepository(db))
	ctl := controller.NewEnrollmentController(db, svc)

	user.Get("/shifts/available", ctl.Available)

	enrollments := user.Group("/enrollments")
	enrollments.Post("/", middlewares.EnrollmentRateLimiter(), ctl.Enroll)
	enrollments.Get("/", ctl.MyEnrollments)
	enrollments.Post("/:id/cancel", ctl.Cancel)
}

// ShiftAdminRoutes mounts the operator-facing shift lifecycle and roster.
func ShiftAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewShiftAdminController(db)

	shifts := admin.Group("/shifts")
	shifts.Post("/", ctl.Create)
	shifts.Get("/", ctl.List)
	shifts.Get("/:id", ctl.Get)
	shifts.Patch("/:id", ctl.Update)
	shifts.Patch("/:id/status", ctl.UpdateStatus)
	shifts.Get("/:id/enrollments", ctl.ListEnrollments)

	admin.Patch("/enrollments/:id/status", ctl.OverrideEnrollmentStatus)
}
