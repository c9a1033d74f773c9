package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: health and liveness, no auth.
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "diarias-backend",
			"status":  "ok",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": dbStatus,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	})
}
