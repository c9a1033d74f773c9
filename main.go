package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"diarias_backend/internals/configs"
	database "diarias_backend/internals/databases"
	allocmodel "diarias_backend/internals/features/allocations/model"
	attendancemodel "diarias_backend/internals/features/attendance/model"
	attendancerepo "diarias_backend/internals/features/attendance/repository"
	"diarias_backend/internals/features/attendance/scheduler"
	attendanceservice "diarias_backend/internals/features/attendance/service"
	companymodel "diarias_backend/internals/features/companies/model"
	fleetmodel "diarias_backend/internals/features/fleet/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
	workermodel "diarias_backend/internals/features/workers/model"
	helper "diarias_backend/internals/helpers"
	"diarias_backend/internals/middlewares"
	"diarias_backend/internals/route"
	"diarias_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	migrate()
	seeds.Run(database.DB)

	app := fiber.New(fiber.Config{
		AppName:     "diarias-backend",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	middlewares.SetupMiddlewares(app)
	route.SetupRoutes(app, database.DB)

	repo := attendancerepo.NewAttendanceRepository(database.DB)
	penalties := attendanceservice.NewPenaltyService(repo, configs.SuspensionDays())
	reconcile := attendanceservice.NewReconcileService(repo, penalties, configs.ShiftCloseLookahead())
	reconciler := scheduler.NewReconciler(reconcile, configs.ReconcilerInterval())
	reconciler.Start()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		reconciler.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown err: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "8080")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

func migrate() {
	err := database.DB.AutoMigrate(
		&companymodel.CompanyModel{},
		&workermodel.WorkerModel{},
		&fleetmodel.TransportRouteModel{},
		&fleetmodel.BoardingPointModel{},
		&fleetmodel.VehicleModel{},
		&shiftmodel.ShiftModel{},
		&shiftmodel.EnrollmentModel{},
		&allocmodel.ShiftAllocationModel{},
		&allocmodel.WorkerAllocationModel{},
		&attendancemodel.AttendanceRecordModel{},
	)
	if err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ migrations applied")
}
