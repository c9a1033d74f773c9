package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarias_backend/internals/features/fleet/dto"
	"diarias_backend/internals/features/fleet/model"
	helper "diarias_backend/internals/helpers"
)

type VehicleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db, Validate: validator.New()}
}

// POST /api/a/vehicles
func (ctl *VehicleController) Create(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	vehicle := model.VehicleModel{
		VehiclePlate:       strings.ToUpper(strings.TrimSpace(req.VehiclePlate)),
		VehicleModel:       req.VehicleModel,
		VehicleCapacity:    req.VehicleCapacity,
		VehicleType:        req.VehicleType,
		VehicleDriverName:  req.VehicleDriverName,
		VehicleDriverPhone: req.VehicleDriverPhone,
		VehicleActive:      true,
	}
	if vehicle.VehicleType == "" {
		vehicle.VehicleType = "van"
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&vehicle).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "A vehicle with this plate already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create vehicle")
	}
	return helper.JsonCreated(c, "Vehicle created", vehicle)
}

// GET /api/a/vehicles
func (ctl *VehicleController) List(c *fiber.Ctx) error {
	var vehicles []model.VehicleModel
	q := ctl.DB.WithContext(c.Context()).Order("vehicle_capacity DESC")
	if c.QueryBool("active_only", false) {
		q = q.Where("vehicle_active = ?", true)
	}
	if err := q.Find(&vehicles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list vehicles")
	}
	return helper.JsonList(c, "", vehicles, nil)
}

// GET /api/a/vehicles/:id
func (ctl *VehicleController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid vehicle id")
	}
	var vehicle model.VehicleModel
	err = ctl.DB.WithContext(c.Context()).Where("vehicle_id = ?", id).Take(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Vehicle not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load vehicle")
	}
	return helper.JsonOK(c, "", vehicle)
}

// PATCH /api/a/vehicles/:id
func (ctl *VehicleController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid vehicle id")
	}
	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	values := map[string]any{}
	if req.VehicleModel != nil {
		values["vehicle_model"] = *req.VehicleModel
	}
	if req.VehicleCapacity != nil {
		values["vehicle_capacity"] = *req.VehicleCapacity
	}
	if req.VehicleType != nil {
		values["vehicle_type"] = *req.VehicleType
	}
	if req.VehicleDriverName != nil {
		values["vehicle_driver_name"] = *req.VehicleDriverName
	}
	if req.VehicleDriverPhone != nil {
		values["vehicle_driver_phone"] = *req.VehicleDriverPhone
	}
	if req.VehicleActive != nil {
		values["vehicle_active"] = *req.VehicleActive
	}
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.VehicleModel{}).
		Where("vehicle_id = ?", id).
		Updates(values)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update vehicle")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Vehicle not found")
	}

	var vehicle model.VehicleModel
	if err := ctl.DB.WithContext(c.Context()).Where("vehicle_id = ?", id).Take(&vehicle).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load vehicle")
	}
	return helper.JsonUpdated(c, "Vehicle updated", vehicle)
}
