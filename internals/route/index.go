package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"diarias_backend/internals/configs"
	"diarias_backend/internals/constants"
	allocroute "diarias_backend/internals/features/allocations/route"
	attendancerepo "diarias_backend/internals/features/attendance/repository"
	attendanceroute "diarias_backend/internals/features/attendance/route"
	attendanceservice "diarias_backend/internals/features/attendance/service"
	companyroute "diarias_backend/internals/features/companies/route"
	fleetroute "diarias_backend/internals/features/fleet/route"
	shiftroute "diarias_backend/internals/features/shifts/route"
	workerroute "diarias_backend/internals/features/workers/route"
	"diarias_backend/internals/middlewares/auth"
)

// SetupRoutes wires the two authenticated surfaces:
//
//	/api/u - worker self service (any authenticated role)
//	/api/a - operator back office
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	jwt := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	user := api.Group("/u", jwt)
	shiftroute.ShiftUserRoutes(user, db)
	allocroute.AllocationUserRoutes(user, db)

	admin := api.Group("/a", jwt, auth.OnlyRoles("Operator access required", constants.RoleOperator))
	penalties := attendanceservice.NewPenaltyService(
		attendancerepo.NewAttendanceRepository(db), configs.SuspensionDays())

	companyroute.CompanyAdminRoutes(admin, db)
	workerroute.WorkerAdminRoutes(admin, db, penalties)
	fleetroute.FleetAdminRoutes(admin, db)
	shiftroute.ShiftAdminRoutes(admin, db)
	allocroute.AllocationAdminRoutes(admin, db)

	// Attendance sits on its own group: supervisors may record presence but
	// have no other back-office access.
	staff := api.Group("/s", jwt)
	attendanceroute.AttendanceStaffRoutes(staff, db)
}
