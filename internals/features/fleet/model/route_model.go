package model

import (
	"time"

	"github.com/google/uuid"
)

type TransportRouteModel struct {
	RouteID          uuid.UUID `gorm:"column:route_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"route_id"`
	RouteName        string    `gorm:"column:route_name;type:varchar(100);not null" json:"route_name"`
	RouteDescription string    `gorm:"column:route_description;type:varchar(255)" json:"route_description,omitempty"`
	RouteActive      bool      `gorm:"column:route_active;not null;default:true" json:"route_active"`

	RouteCreatedAt time.Time `gorm:"column:route_created_at;autoCreateTime" json:"route_created_at"`
	RouteUpdatedAt time.Time `gorm:"column:route_updated_at;autoUpdateTime" json:"route_updated_at"`
}

func (TransportRouteModel) TableName() string {
	return "transport_routes"
}

// BoardingPointModel is a fixed pickup stop on a route. Lower order index
// means the shuttle reaches it earlier.
type BoardingPointModel struct {
	PointID        uuid.UUID `gorm:"column:point_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"point_id"`
	PointRouteID   uuid.UUID `gorm:"column:point_route_id;type:uuid;not null;index" json:"point_route_id"`
	PointName      string    `gorm:"column:point_name;type:varchar(100);not null" json:"point_name"`
	PointAddress   string    `gorm:"column:point_address;type:varchar(255)" json:"point_address,omitempty"`
	PointReference string    `gorm:"column:point_reference;type:varchar(255)" json:"point_reference,omitempty"`
	PointLatitude  *float64  `gorm:"column:point_latitude" json:"point_latitude,omitempty"`
	PointLongitude *float64  `gorm:"column:point_longitude" json:"point_longitude,omitempty"`
	PointOrder     *int      `gorm:"column:point_order" json:"point_order,omitempty"`
	PointActive    bool      `gorm:"column:point_active;not null;default:true" json:"point_active"`

	PointCreatedAt time.Time `gorm:"column:point_created_at;autoCreateTime" json:"point_created_at"`
	PointUpdatedAt time.Time `gorm:"column:point_updated_at;autoUpdateTime" json:"point_updated_at"`
}

func (BoardingPointModel) TableName() string {
	return "boarding_points"
}
