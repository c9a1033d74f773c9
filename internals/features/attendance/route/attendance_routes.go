package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"diarias_backend/internals/constants"
	"diarias_backend/internals/features/attendance/controller"
	"diarias_backend/internals/features/attendance/repository"
	"diarias_backend/internals/features/attendance/service"
	"diarias_backend/internals/middlewares/auth"
)

// AttendanceStaffRoutes mounts presence capture for supervisors and
// operators.
func AttendanceStaffRoutes(admin fiber.Router, db *gorm.DB) {
	svc := service.NewAttendanceService(repository.NewAttendanceRepository(db))
	ctl := controller.NewAttendanceController(svc)

	admin.Post("/attendance",
		auth.OnlyRoles("Only staff can record attendance", constants.StaffRoles...),
		ctl.Record)
}
