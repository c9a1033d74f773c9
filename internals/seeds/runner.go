package seeds

import (
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	companymodel "diarias_backend/internals/features/companies/model"
	fleetmodel "diarias_backend/internals/features/fleet/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
	workermodel "diarias_backend/internals/features/workers/model"
	"diarias_backend/internals/helpers/dbtime"
)

// Run seeds a minimal demo data set when SEED_DEMO_DATA=true. It is a no-op
// when any company already exists.
func Run(db *gorm.DB) {
	if os.Getenv("SEED_DEMO_DATA") != "true" {
		return
	}

	var count int64
	if err := db.Model(&companymodel.CompanyModel{}).Count(&count).Error; err != nil {
		log.Printf("[SEEDS] ❌ count failed: %v", err)
		return
	}
	if count > 0 {
		log.Println("[SEEDS] data present, skipping")
		return
	}

	company := companymodel.CompanyModel{
		CompanyName:    "LogiCenter Distribuição",
		CompanyContact: "Marcos Lima",
		CompanyPhone:   "+55 11 4002-8922",
		CompanyAddress: "Rod. Anhanguera km 26, Cajamar - SP",
		CompanyActive:  true,
	}
	if err := db.Create(&company).Error; err != nil {
		log.Printf("[SEEDS] ❌ company: %v", err)
		return
	}

	route := fleetmodel.TransportRouteModel{
		RouteName:        "Linha Centro - Cajamar",
		RouteDescription: "Terminal central até o CD, via marginal",
		RouteActive:      true,
	}
	if err := db.Create(&route).Error; err != nil {
		log.Printf("[SEEDS] ❌ route: %v", err)
		return
	}

	order1, order2 := 1, 2
	lat1, lng1 := -23.5475, -46.6361
	lat2, lng2 := -23.5033, -46.7233
	points := []fleetmodel.BoardingPointModel{
		{
			PointRouteID:   route.RouteID,
			PointName:      "Terminal Central",
			PointAddress:   "Praça do Correio, Centro",
			PointLatitude:  &lat1,
			PointLongitude: &lng1,
			PointOrder:     &order1,
			PointActive:    true,
		},
		{
			PointRouteID:   route.RouteID,
			PointName:      "Praça das Nações",
			PointAddress:   "Av. das Nações 1200",
			PointLatitude:  &lat2,
			PointLongitude: &lng2,
			PointOrder:     &order2,
			PointActive:    true,
		},
	}
	if err := db.Create(&points).Error; err != nil {
		log.Printf("[SEEDS] ❌ points: %v", err)
		return
	}

	vehicles := []fleetmodel.VehicleModel{
		{
			VehiclePlate:       "FZX2B41",
			VehicleModel:       "Mercedes Sprinter 516",
			VehicleCapacity:    19,
			VehicleType:        "van",
			VehicleDriverName:  "Sérgio Andrade",
			VehicleDriverPhone: "+55 11 98888-1010",
			VehicleActive:      true,
		},
		{
			VehiclePlate:       "GHK7C22",
			VehicleModel:       "Volare W9",
			VehicleCapacity:    32,
			VehicleType:        "minibus",
			VehicleDriverName:  "Rita Campos",
			VehicleDriverPhone: "+55 11 97777-2020",
			VehicleActive:      true,
		},
	}
	if err := db.Create(&vehicles).Error; err != nil {
		log.Printf("[SEEDS] ❌ vehicles: %v", err)
		return
	}

	workers := []workermodel.WorkerModel{
		{WorkerName: "Ana Souza", WorkerEmail: "ana.souza@example.com", WorkerBoardingPointID: &points[0].PointID, WorkerActive: true},
		{WorkerName: "Bruno Ferreira", WorkerEmail: "bruno.ferreira@example.com", WorkerBoardingPointID: &points[1].PointID, WorkerActive: true},
		{WorkerName: "Carla Mendes", WorkerEmail: "carla.mendes@example.com", WorkerActive: true},
	}
	if err := db.Create(&workers).Error; err != nil {
		log.Printf("[SEEDS] ❌ workers: %v", err)
		return
	}

	start, _ := dbtime.Parse("06:00")
	end, _ := dbtime.Parse("15:20")
	tomorrow := time.Now().AddDate(0, 0, 1)
	shift := shiftmodel.ShiftModel{
		ShiftCompanyID: company.CompanyID,
		ShiftTitle:     "Separação - turno da manhã",
		ShiftDate:      datatypes.Date(tomorrow),
		ShiftStartTime: &start,
		ShiftEndTime:   &end,
		ShiftSeats:     20,
		ShiftRate:      135.50,
		ShiftLocation:  "CD Cajamar, doca 4",
		ShiftStatus:    shiftmodel.ShiftOpen,
		ShiftVersion:   1,
	}
	if err := db.Create(&shift).Error; err != nil {
		log.Printf("[SEEDS] ❌ shift: %v", err)
		return
	}

	log.Println("[SEEDS] ✅ demo data loaded")
}
