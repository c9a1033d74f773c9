package dto

import (
	"github.com/google/uuid"

	"diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/helpers/dbtime"
)

/* =========================================================
   Admin requests
========================================================= */

type CreateShiftRequest struct {
	ShiftCompanyID    uuid.UUID  `json:"shift_company_id" validate:"required"`
	ShiftSupervisorID *uuid.UUID `json:"shift_supervisor_id"`
	ShiftTitle        string     `json:"shift_title" validate:"required,min=3,max=150"`
	ShiftDescription  string     `json:"shift_description" validate:"omitempty,max=2000"`
	ShiftDate         string     `json:"shift_date" validate:"required,datetime=2006-01-02"`
	ShiftStartTime    *string    `json:"shift_start_time" validate:"omitempty,datetime=15:04"`
	ShiftEndTime      *string    `json:"shift_end_time" validate:"omitempty,datetime=15:04"`
	ShiftSeats        int        `json:"shift_seats" validate:"required,min=1,max=500"`
	ShiftRate         float64    `json:"shift_rate" validate:"omitempty,min=0"`
	ShiftLocation     string     `json:"shift_location" validate:"omitempty,max=255"`
}

type UpdateShiftRequest struct {
	ShiftSupervisorID *uuid.UUID `json:"shift_supervisor_id"`
	ShiftTitle        *string    `json:"shift_title" validate:"omitempty,min=3,max=150"`
	ShiftDescription  *string    `json:"shift_description" validate:"omitempty,max=2000"`
	ShiftDate         *string    `json:"shift_date" validate:"omitempty,datetime=2006-01-02"`
	ShiftStartTime    *string    `json:"shift_start_time" validate:"omitempty,datetime=15:04"`
	ShiftEndTime      *string    `json:"shift_end_time" validate:"omitempty,datetime=15:04"`
	ShiftSeats        *int       `json:"shift_seats" validate:"omitempty,min=1,max=500"`
	ShiftRate         *float64   `json:"shift_rate" validate:"omitempty,min=0"`
	ShiftLocation     *string    `json:"shift_location" validate:"omitempty,max=255"`
}

type UpdateShiftStatusRequest struct {
	Status model.ShiftStatus `json:"status" validate:"required,oneof=open closed in_progress completed cancelled"`
}

// OverrideEnrollmentStatusRequest: operator decision on a pending or
// confirmed enrollment.
type OverrideEnrollmentStatusRequest struct {
	Status model.EnrollmentStatus `json:"status" validate:"required,oneof=confirmed rejected"`
}

/* =========================================================
   Worker requests
========================================================= */

type EnrollRequest struct {
	ShiftID uuid.UUID `json:"shift_id" validate:"required"`
}

/* =========================================================
   Views
========================================================= */

// AvailableShiftView: an open upcoming shift with its remaining seats.
type AvailableShiftView struct {
	ShiftID        uuid.UUID   `json:"shift_id"`
	CompanyName    string      `json:"company_name"`
	ShiftTitle     string      `json:"shift_title"`
	ShiftDate      string      `json:"shift_date"`
	ShiftStartTime *dbtime.Tod `json:"shift_start_time,omitempty"`
	ShiftEndTime   *dbtime.Tod `json:"shift_end_time,omitempty"`
	ShiftSeats     int         `json:"shift_seats"`
	OpenSeats      int         `json:"open_seats"`
	ShiftRate      float64     `json:"shift_rate"`
	ShiftLocation  string      `json:"shift_location,omitempty"`
}

// MyEnrollmentView: a worker's enrollment with the shift it belongs to.
type MyEnrollmentView struct {
	EnrollmentID     uuid.UUID              `json:"enrollment_id"`
	EnrollmentStatus model.EnrollmentStatus `json:"enrollment_status"`
	ShiftID          uuid.UUID              `json:"shift_id"`
	ShiftTitle       string                 `json:"shift_title"`
	ShiftDate        string                 `json:"shift_date"`
	ShiftStartTime   *dbtime.Tod            `json:"shift_start_time,omitempty"`
	ShiftEndTime     *dbtime.Tod            `json:"shift_end_time,omitempty"`
	ShiftLocation    string                 `json:"shift_location,omitempty"`
}

// ShiftEnrollmentView: operator's roster line for one shift.
type ShiftEnrollmentView struct {
	EnrollmentID     uuid.UUID              `json:"enrollment_id"`
	EnrollmentStatus model.EnrollmentStatus `json:"enrollment_status"`
	WorkerID         uuid.UUID              `json:"worker_id"`
	WorkerName       string                 `json:"worker_name"`
	WorkerPhone      string                 `json:"worker_phone,omitempty"`
	HasBoardingPoint bool                   `json:"has_boarding_point"`
}
