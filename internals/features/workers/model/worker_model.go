package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WorkerModel struct {
	WorkerID    uuid.UUID `gorm:"column:worker_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"worker_id"`
	WorkerName  string    `gorm:"column:worker_name;type:varchar(100);not null" json:"worker_name"`
	WorkerEmail string    `gorm:"column:worker_email;type:varchar(100);unique;not null" json:"worker_email"`
	WorkerPhone string    `gorm:"column:worker_phone;type:varchar(20)" json:"worker_phone,omitempty"`

	// Shuttle pickup location for this worker (nullable: no fixed point).
	WorkerBoardingPointID *uuid.UUID `gorm:"column:worker_boarding_point_id;type:uuid" json:"worker_boarding_point_id,omitempty"`

	// Suspension fields are written only by the reconciler and the admin
	// override. A nil until-date with the flag set means indefinite.
	WorkerSuspended        bool            `gorm:"column:worker_suspended;not null;default:false" json:"worker_suspended"`
	WorkerSuspendedUntil   *datatypes.Date `gorm:"column:worker_suspended_until;type:date" json:"worker_suspended_until,omitempty"`
	WorkerSuspensionReason string          `gorm:"column:worker_suspension_reason;type:text" json:"worker_suspension_reason,omitempty"`

	WorkerActive    bool      `gorm:"column:worker_active;not null;default:true" json:"worker_active"`
	WorkerCreatedAt time.Time `gorm:"column:worker_created_at;autoCreateTime" json:"worker_created_at"`
	WorkerUpdatedAt time.Time `gorm:"column:worker_updated_at;autoUpdateTime" json:"worker_updated_at"`
}

func (WorkerModel) TableName() string {
	return "workers"
}
