package model

import (
	"time"

	"github.com/google/uuid"
)

type VehicleModel struct {
	VehicleID          uuid.UUID `gorm:"column:vehicle_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"vehicle_id"`
	VehiclePlate       string    `gorm:"column:vehicle_plate;type:varchar(10);unique;not null" json:"vehicle_plate"`
	VehicleModel       string    `gorm:"column:vehicle_model;type:varchar(100);not null" json:"vehicle_model"`
	VehicleCapacity    int       `gorm:"column:vehicle_capacity;not null" json:"vehicle_capacity"`
	VehicleType        string    `gorm:"column:vehicle_type;type:varchar(50);default:'van'" json:"vehicle_type"`
	VehicleDriverName  string    `gorm:"column:vehicle_driver_name;type:varchar(100)" json:"vehicle_driver_name,omitempty"`
	VehicleDriverPhone string    `gorm:"column:vehicle_driver_phone;type:varchar(20)" json:"vehicle_driver_phone,omitempty"`
	VehicleActive      bool      `gorm:"column:vehicle_active;not null;default:true" json:"vehicle_active"`

	VehicleCreatedAt time.Time `gorm:"column:vehicle_created_at;autoCreateTime" json:"vehicle_created_at"`
	VehicleUpdatedAt time.Time `gorm:"column:vehicle_updated_at;autoUpdateTime" json:"vehicle_updated_at"`
}

func (VehicleModel) TableName() string {
	return "vehicles"
}
