package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"diarias_backend/internals/helpers/dbtime"
)

type ShiftStatus string

const (
	ShiftOpen       ShiftStatus = "open"        // accepting enrollments
	ShiftClosed     ShiftStatus = "closed"      // enrollments frozen
	ShiftInProgress ShiftStatus = "in_progress" // happening now
	ShiftCompleted  ShiftStatus = "completed"   // finished
	ShiftCancelled  ShiftStatus = "cancelled"
)

var shiftTransitions = map[ShiftStatus][]ShiftStatus{
	ShiftOpen:       {ShiftClosed, ShiftCancelled},
	ShiftClosed:     {ShiftInProgress, ShiftCancelled},
	ShiftInProgress: {ShiftCompleted},
}

// CanTransition reports whether a shift status change is legal.
func (s ShiftStatus) CanTransition(to ShiftStatus) bool {
	for _, next := range shiftTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type ShiftModel struct {
	ShiftID           uuid.UUID      `gorm:"column:shift_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"shift_id"`
	ShiftCompanyID    uuid.UUID      `gorm:"column:shift_company_id;type:uuid;not null;index" json:"shift_company_id"`
	ShiftSupervisorID *uuid.UUID     `gorm:"column:shift_supervisor_id;type:uuid" json:"shift_supervisor_id,omitempty"`
	ShiftTitle        string         `gorm:"column:shift_title;type:varchar(150);not null" json:"shift_title"`
	ShiftDescription  string         `gorm:"column:shift_description;type:text" json:"shift_description,omitempty"`
	ShiftDate         datatypes.Date `gorm:"column:shift_date;type:date;not null;index" json:"shift_date"`
	ShiftStartTime    *dbtime.Tod    `gorm:"column:shift_start_time;type:time" json:"shift_start_time,omitempty"`
	ShiftEndTime      *dbtime.Tod    `gorm:"column:shift_end_time;type:time" json:"shift_end_time,omitempty"`
	ShiftSeats        int            `gorm:"column:shift_seats;not null;default:1" json:"shift_seats"`
	ShiftRate         float64        `gorm:"column:shift_rate;type:numeric(10,2)" json:"shift_rate"`
	ShiftLocation     string         `gorm:"column:shift_location;type:varchar(255)" json:"shift_location,omitempty"`
	ShiftStatus       ShiftStatus    `gorm:"column:shift_status;type:varchar(20);not null;default:'open';index" json:"shift_status"`

	// Optimistic token: bumped on every state transition.
	ShiftVersion int `gorm:"column:shift_version;not null;default:1" json:"shift_version"`

	ShiftCreatedAt time.Time `gorm:"column:shift_created_at;autoCreateTime" json:"shift_created_at"`
	ShiftUpdatedAt time.Time `gorm:"column:shift_updated_at;autoUpdateTime" json:"shift_updated_at"`
}

func (ShiftModel) TableName() string {
	return "shifts"
}

// StartAt combines date + start time (midnight when the start is open-ended).
func (m *ShiftModel) StartAt() time.Time {
	d := time.Time(m.ShiftDate)
	if m.ShiftStartTime != nil {
		return m.ShiftStartTime.On(d)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// EndAt combines date + end time (end of day when the end is open-ended).
func (m *ShiftModel) EndAt() time.Time {
	d := time.Time(m.ShiftDate)
	if m.ShiftEndTime != nil {
		return m.ShiftEndTime.On(d)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}
