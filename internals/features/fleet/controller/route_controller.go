package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarias_backend/internals/features/fleet/dto"
	"diarias_backend/internals/features/fleet/model"
	helper "diarias_backend/internals/helpers"
)

type RouteController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRouteController(db *gorm.DB) *RouteController {
	return &RouteController{DB: db, Validate: validator.New()}
}

// POST /api/a/transport-routes
func (ctl *RouteController) Create(c *fiber.Ctx) error {
	var req dto.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	route := model.TransportRouteModel{
		RouteName:        req.RouteName,
		RouteDescription: req.RouteDescription,
		RouteActive:      true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&route).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create route")
	}
	return helper.JsonCreated(c, "Route created", route)
}

// GET /api/a/transport-routes
func (ctl *RouteController) List(c *fiber.Ctx) error {
	var routes []model.TransportRouteModel
	q := ctl.DB.WithContext(c.Context()).Order("route_name ASC")
	if c.QueryBool("active_only", false) {
		q = q.Where("route_active = ?", true)
	}
	if err := q.Find(&routes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list routes")
	}
	return helper.JsonList(c, "", routes, nil)
}

// GET /api/a/transport-routes/:id
func (ctl *RouteController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid route id")
	}
	var route model.TransportRouteModel
	err = ctl.DB.WithContext(c.Context()).Where("route_id = ?", id).Take(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Route not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load route")
	}

	var points []model.BoardingPointModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("point_route_id = ?", id).
		Order("point_order ASC NULLS LAST").
		Find(&points).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load boarding points")
	}
	return helper.JsonOK(c, "", fiber.Map{"route": route, "points": points})
}

// PATCH /api/a/transport-routes/:id
func (ctl *RouteController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid route id")
	}
	var req dto.UpdateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	values := map[string]any{}
	if req.RouteName != nil {
		values["route_name"] = *req.RouteName
	}
	if req.RouteDescription != nil {
		values["route_description"] = *req.RouteDescription
	}
	if req.RouteActive != nil {
		values["route_active"] = *req.RouteActive
	}
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.TransportRouteModel{}).
		Where("route_id = ?", id).
		Updates(values)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update route")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Route not found")
	}
	return helper.JsonUpdated(c, "Route updated", fiber.Map{"route_id": id})
}

/* =========================================================
   Boarding points
========================================================= */

// POST /api/a/transport-routes/:id/points
func (ctl *RouteController) AddPoint(c *fiber.Ctx) error {
	routeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid route id")
	}
	var req dto.CreatePointRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var count int64
	if err := ctl.DB.WithContext(c.Context()).Model(&model.TransportRouteModel{}).
		Where("route_id = ?", routeID).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check route")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Route not found")
	}

	point := model.BoardingPointModel{
		PointRouteID:   routeID,
		PointName:      req.PointName,
		PointAddress:   req.PointAddress,
		PointReference: req.PointReference,
		PointLatitude:  req.PointLatitude,
		PointLongitude: req.PointLongitude,
		PointOrder:     req.PointOrder,
		PointActive:    true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&point).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create boarding point")
	}
	return helper.JsonCreated(c, "Boarding point created", point)
}

// PATCH /api/a/transport-routes/:id/points/:pointId
func (ctl *RouteController) UpdatePoint(c *fiber.Ctx) error {
	routeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid route id")
	}
	pointID, err := uuid.Parse(c.Params("pointId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid point id")
	}
	var req dto.UpdatePointRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	values := map[string]any{}
	if req.PointName != nil {
		values["point_name"] = *req.PointName
	}
	if req.PointAddress != nil {
		values["point_address"] = *req.PointAddress
	}
	if req.PointReference != nil {
		values["point_reference"] = *req.PointReference
	}
	if req.PointLatitude != nil {
		values["point_latitude"] = *req.PointLatitude
	}
	if req.PointLongitude != nil {
		values["point_longitude"] = *req.PointLongitude
	}
	if req.PointOrder != nil {
		values["point_order"] = *req.PointOrder
	}
	if req.PointActive != nil {
		values["point_active"] = *req.PointActive
	}
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.BoardingPointModel{}).
		Where("point_id = ? AND point_route_id = ?", pointID, routeID).
		Updates(values)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update boarding point")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Boarding point not found")
	}
	return helper.JsonUpdated(c, "Boarding point updated", fiber.Map{"point_id": pointID})
}
