package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"diarias_backend/internals/features/fleet/controller"
)

// FleetAdminRoutes mounts vehicle and transport route management.
func FleetAdminRoutes(admin fiber.Router, db *gorm.DB) {
	vehicles := controller.NewVehicleController(db)
	routes := controller.NewRouteController(db)

	v := admin.Group("/vehicles")
	v.Post("/", vehicles.Create)
	v.Get("/", vehicles.List)
	v.Get("/:id", vehicles.Get)
	v.Patch("/:id", vehicles.Update)

	r := admin.Group("/transport-routes")
	r.Post("/", routes.Create)
	r.Get("/", routes.List)
	r.Get("/:id", routes.Get)
	r.Patch("/:id", routes.Update)
	r.Post("/:id/points", routes.AddPoint)
	r.Patch("/:id/points/:pointId", routes.UpdatePoint)
}
