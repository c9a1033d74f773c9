package dto

type CreateVehicleRequest struct {
	VehiclePlate       string `json:"vehicle_plate" validate:"required,min=5,max=10"`
	VehicleModel       string `json:"vehicle_model" validate:"required,max=100"`
	VehicleCapacity    int    `json:"vehicle_capacity" validate:"required,min=1,max=80"`
	VehicleType        string `json:"vehicle_type" validate:"omitempty,oneof=van minibus bus car"`
	VehicleDriverName  string `json:"vehicle_driver_name" validate:"omitempty,max=100"`
	VehicleDriverPhone string `json:"vehicle_driver_phone" validate:"omitempty,max=20"`
}

type UpdateVehicleRequest struct {
	VehicleModel       *string `json:"vehicle_model" validate:"omitempty,max=100"`
	VehicleCapacity    *int    `json:"vehicle_capacity" validate:"omitempty,min=1,max=80"`
	VehicleType        *string `json:"vehicle_type" validate:"omitempty,oneof=van minibus bus car"`
	VehicleDriverName  *string `json:"vehicle_driver_name" validate:"omitempty,max=100"`
	VehicleDriverPhone *string `json:"vehicle_driver_phone" validate:"omitempty,max=20"`
	VehicleActive      *bool   `json:"vehicle_active"`
}

type CreateRouteRequest struct {
	RouteName        string `json:"route_name" validate:"required,min=2,max=100"`
	RouteDescription string `json:"route_description" validate:"omitempty,max=255"`
}

type UpdateRouteRequest struct {
	RouteName        *string `json:"route_name" validate:"omitempty,min=2,max=100"`
	RouteDescription *string `json:"route_description" validate:"omitempty,max=255"`
	RouteActive      *bool   `json:"route_active"`
}

type CreatePointRequest struct {
	PointName      string   `json:"point_name" validate:"required,min=2,max=100"`
	PointAddress   string   `json:"point_address" validate:"omitempty,max=255"`
	PointReference string   `json:"point_reference" validate:"omitempty,max=255"`
	PointLatitude  *float64 `json:"point_latitude" validate:"omitempty,latitude"`
	PointLongitude *float64 `json:"point_longitude" validate:"omitempty,longitude"`
	PointOrder     *int     `json:"point_order" validate:"omitempty,min=0"`
}

type UpdatePointRequest struct {
	PointName      *string  `json:"point_name" validate:"omitempty,min=2,max=100"`
	PointAddress   *string  `json:"point_address" validate:"omitempty,max=255"`
	PointReference *string  `json:"point_reference" validate:"omitempty,max=255"`
	PointLatitude  *float64 `json:"point_latitude" validate:"omitempty,latitude"`
	PointLongitude *float64 `json:"point_longitude" validate:"omitempty,longitude"`
	PointOrder     *int     `json:"point_order" validate:"omitempty,min=0"`
	PointActive    *bool    `json:"point_active"`
}
