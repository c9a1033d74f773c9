package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecordModel: presence proof for one enrollment, captured by a
// supervisor. Absence of a row after shift end is the no-show signal.
type AttendanceRecordModel struct {
	AttendanceID           uuid.UUID `gorm:"column:attendance_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"attendance_id"`
	AttendanceEnrollmentID uuid.UUID `gorm:"column:attendance_enrollment_id;type:uuid;not null;uniqueIndex" json:"attendance_enrollment_id"`
	AttendanceRecordedBy   uuid.UUID `gorm:"column:attendance_recorded_by;type:uuid;not null" json:"attendance_recorded_by"`
	AttendanceRecordedAt   time.Time `gorm:"column:attendance_recorded_at;not null;autoCreateTime" json:"attendance_recorded_at"`
	AttendanceLatitude     *float64  `gorm:"column:attendance_latitude" json:"attendance_latitude,omitempty"`
	AttendanceLongitude    *float64  `gorm:"column:attendance_longitude" json:"attendance_longitude,omitempty"`
	AttendanceNote         string    `gorm:"column:attendance_note;type:text" json:"attendance_note,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}
