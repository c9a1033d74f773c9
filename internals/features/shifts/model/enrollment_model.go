package model

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCancelled EnrollmentStatus = "cancelled" // worker-initiated
	EnrollmentRejected  EnrollmentStatus = "rejected"  // operator-initiated
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentNoShow    EnrollmentStatus = "no_show"
)

// IsActive: counts toward the seat quota and blocks re-enrollment.
func (s EnrollmentStatus) IsActive() bool {
	return s == EnrollmentPending || s == EnrollmentConfirmed
}

var enrollmentTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	EnrollmentPending:   {EnrollmentConfirmed, EnrollmentCancelled, EnrollmentRejected},
	EnrollmentConfirmed: {EnrollmentCompleted, EnrollmentNoShow, EnrollmentCancelled, EnrollmentRejected},
}

func (s EnrollmentStatus) CanTransition(to EnrollmentStatus) bool {
	for _, next := range enrollmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type EnrollmentModel struct {
	EnrollmentID       uuid.UUID        `gorm:"column:enrollment_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"enrollment_id"`
	EnrollmentShiftID  uuid.UUID        `gorm:"column:enrollment_shift_id;type:uuid;not null;index" json:"enrollment_shift_id"`
	EnrollmentWorkerID uuid.UUID        `gorm:"column:enrollment_worker_id;type:uuid;not null;index" json:"enrollment_worker_id"`
	EnrollmentStatus   EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;default:'pending';index" json:"enrollment_status"`
	EnrollmentNote     string           `gorm:"column:enrollment_note;type:text" json:"enrollment_note,omitempty"`

	EnrollmentVersion int `gorm:"column:enrollment_version;not null;default:1" json:"enrollment_version"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
