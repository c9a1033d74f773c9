package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"diarias_backend/internals/configs"
	"diarias_backend/internals/features/allocations/controller"
	"diarias_backend/internals/features/allocations/maps"
	"diarias_backend/internals/features/allocations/repository"
	"diarias_backend/internals/features/allocations/service"
)

func buildController(db *gorm.DB) *controller.AllocationController {
	var provider maps.DirectionsProvider
	if configs.GoogleMapsAPIKey != "" {
		provider = maps.NewGoogleDirectionsClient(configs.GoogleMapsAPIKey, configs.DirectionsTimeout())
	}
	estimator := service.NewTimingEstimator(provider,
		float64(configs.FallbackTravelMinutes()), float64(configs.DwellMinutes()))

	repo := repository.NewAllocationRepository(db)
	planner := service.NewPlannerService(repo, estimator)
	return controller.NewAllocationController(planner, repo)
}

// AllocationAdminRoutes mounts planning under the shift resource.
func AllocationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := buildController(db)
	admin.Post("/shifts/:id/allocations/generate", ctl.Generate)
	admin.Get("/shifts/:id/allocations", ctl.GetShiftAllocations)
}

// AllocationUserRoutes mounts the worker's boarding view.
func AllocationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := buildController(db)
	user.Get("/my-allocations", ctl.MyAllocations)
}
