package dto

import "github.com/google/uuid"

type RecordAttendanceRequest struct {
	EnrollmentID uuid.UUID `json:"enrollment_id" validate:"required"`
	Latitude     *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64  `json:"longitude" validate:"omitempty,longitude"`
	Note         string    `json:"note" validate:"omitempty,max=500"`
}
