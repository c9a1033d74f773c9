package dto

import (
	"github.com/google/uuid"

	"diarias_backend/internals/helpers/dbtime"
)

/* =========================================================
   Operator view: full plan for one shift
========================================================= */

type AllocatedWorkerView struct {
	WorkerAllocationID uuid.UUID   `json:"worker_allocation_id"`
	EnrollmentID       uuid.UUID   `json:"enrollment_id"`
	WorkerID           uuid.UUID   `json:"worker_id"`
	WorkerName         string      `json:"worker_name"`
	PointName          string      `json:"point_name,omitempty"`
	EstimatedTime      *dbtime.Tod `json:"estimated_time,omitempty"`
	BoardingOrder      int         `json:"boarding_order"`
}

type VehicleAllocationView struct {
	AllocationID  uuid.UUID             `json:"allocation_id"`
	VehicleID     uuid.UUID             `json:"vehicle_id"`
	VehiclePlate  string                `json:"vehicle_plate"`
	VehicleModel  string                `json:"vehicle_model"`
	DriverName    string                `json:"driver_name,omitempty"`
	DriverPhone   string                `json:"driver_phone,omitempty"`
	DepartureTime *dbtime.Tod           `json:"departure_time,omitempty"`
	Workers       []AllocatedWorkerView `json:"workers"`
}

/* =========================================================
   Worker view: where do I board, and when
========================================================= */

type MyAllocationView struct {
	ShiftID       uuid.UUID   `json:"shift_id"`
	ShiftTitle    string      `json:"shift_title"`
	ShiftDate     string      `json:"shift_date"`
	ShiftLocation string      `json:"shift_location,omitempty"`
	VehiclePlate  string      `json:"vehicle_plate"`
	VehicleModel  string      `json:"vehicle_model"`
	DriverName    string      `json:"driver_name,omitempty"`
	DriverPhone   string      `json:"driver_phone,omitempty"`
	PointName     string      `json:"point_name,omitempty"`
	PointAddress  string      `json:"point_address,omitempty"`
	EstimatedTime *dbtime.Tod `json:"estimated_time,omitempty"`
	BoardingOrder int         `json:"boarding_order"`
}
