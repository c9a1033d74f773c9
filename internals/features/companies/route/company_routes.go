package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"diarias_backend/internals/features/companies/controller"
)

// CompanyAdminRoutes mounts operator-facing company management.
func CompanyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewCompanyController(db)

	companies := admin.Group("/companies")
	companies.Post("/", ctl.Create)
	companies.Get("/", ctl.List)
	companies.Get("/:id", ctl.Get)
	companies.Patch("/:id", ctl.Update)
}
