package model

import (
	"time"

	"github.com/google/uuid"

	"diarias_backend/internals/helpers/dbtime"
)

// ShiftAllocationModel: one vehicle serving one shift. Rows are owned by the
// planner; a planning run deletes and recreates them wholesale.
type ShiftAllocationModel struct {
	AllocationID            uuid.UUID   `gorm:"column:allocation_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"allocation_id"`
	AllocationShiftID       uuid.UUID   `gorm:"column:allocation_shift_id;type:uuid;not null;index" json:"allocation_shift_id"`
	AllocationVehicleID     uuid.UUID   `gorm:"column:allocation_vehicle_id;type:uuid;not null;index" json:"allocation_vehicle_id"`
	AllocationRouteID       *uuid.UUID  `gorm:"column:allocation_route_id;type:uuid" json:"allocation_route_id,omitempty"`
	AllocationDepartureTime *dbtime.Tod `gorm:"column:allocation_departure_time;type:time" json:"allocation_departure_time,omitempty"`
	AllocationNote          string      `gorm:"column:allocation_note;type:varchar(500)" json:"allocation_note,omitempty"`

	AllocationCreatedAt time.Time `gorm:"column:allocation_created_at;autoCreateTime" json:"allocation_created_at"`

	Workers []WorkerAllocationModel `gorm:"foreignKey:WorkerAllocationAllocationID;references:AllocationID" json:"workers,omitempty"`
}

func (ShiftAllocationModel) TableName() string {
	return "shift_allocations"
}

// WorkerAllocationModel: one enrollee seated on one vehicle, with the pickup
// point, estimated passage time and boarding order along the route.
type WorkerAllocationModel struct {
	WorkerAllocationID            uuid.UUID   `gorm:"column:worker_allocation_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"worker_allocation_id"`
	WorkerAllocationAllocationID  uuid.UUID   `gorm:"column:worker_allocation_allocation_id;type:uuid;not null;index" json:"worker_allocation_allocation_id"`
	WorkerAllocationEnrollmentID  uuid.UUID   `gorm:"column:worker_allocation_enrollment_id;type:uuid;not null;index" json:"worker_allocation_enrollment_id"`
	WorkerAllocationPointID       *uuid.UUID  `gorm:"column:worker_allocation_point_id;type:uuid" json:"worker_allocation_point_id,omitempty"`
	WorkerAllocationEstimatedTime *dbtime.Tod `gorm:"column:worker_allocation_estimated_time;type:time" json:"worker_allocation_estimated_time,omitempty"`
	WorkerAllocationBoardingOrder int         `gorm:"column:worker_allocation_boarding_order;not null;default:0" json:"worker_allocation_boarding_order"`

	WorkerAllocationCreatedAt time.Time `gorm:"column:worker_allocation_created_at;autoCreateTime" json:"worker_allocation_created_at"`
}

func (WorkerAllocationModel) TableName() string {
	return "worker_allocations"
}
