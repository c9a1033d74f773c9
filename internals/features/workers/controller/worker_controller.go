package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceservice "diarias_backend/internals/features/attendance/service"
	"diarias_backend/internals/features/workers/dto"
	"diarias_backend/internals/features/workers/model"
	helper "diarias_backend/internals/helpers"
)

type WorkerController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Penalties *attendanceservice.PenaltyService
}

func NewWorkerController(db *gorm.DB, penalties *attendanceservice.PenaltyService) *WorkerController {
	return &WorkerController{DB: db, Validate: validator.New(), Penalties: penalties}
}

// POST /api/a/workers
func (ctl *WorkerController) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	worker := model.WorkerModel{
		WorkerName:            req.WorkerName,
		WorkerEmail:           strings.ToLower(strings.TrimSpace(req.WorkerEmail)),
		WorkerPhone:           req.WorkerPhone,
		WorkerBoardingPointID: req.WorkerBoardingPointID,
		WorkerActive:          true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&worker).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "A worker with this email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create worker")
	}
	return helper.JsonCreated(c, "Worker created", worker)
}

// GET /api/a/workers
func (ctl *WorkerController) List(c *fiber.Ctx) error {
	var workers []model.WorkerModel
	q := ctl.DB.WithContext(c.Context()).Order("worker_name ASC")
	if c.QueryBool("suspended_only", false) {
		q = q.Where("worker_suspended = ?", true)
	}
	if err := q.Find(&workers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list workers")
	}
	return helper.JsonList(c, "", workers, nil)
}

// GET /api/a/workers/:id
func (ctl *WorkerController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid worker id")
	}
	var worker model.WorkerModel
	err = ctl.DB.WithContext(c.Context()).Where("worker_id = ?", id).Take(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Worker not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load worker")
	}
	return helper.JsonOK(c, "", worker)
}

// PATCH /api/a/workers/:id
func (ctl *WorkerController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid worker id")
	}
	var req dto.UpdateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	values := map[string]any{}
	if req.WorkerName != nil {
		values["worker_name"] = *req.WorkerName
	}
	if req.WorkerEmail != nil {
		values["worker_email"] = strings.ToLower(strings.TrimSpace(*req.WorkerEmail))
	}
	if req.WorkerPhone != nil {
		values["worker_phone"] = *req.WorkerPhone
	}
	if req.WorkerBoardingPointID != nil {
		values["worker_boarding_point_id"] = *req.WorkerBoardingPointID
	}
	if req.WorkerActive != nil {
		values["worker_active"] = *req.WorkerActive
	}
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.WorkerModel{}).
		Where("worker_id = ?", id).
		Updates(values)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update worker")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Worker not found")
	}

	var worker model.WorkerModel
	if err := ctl.DB.WithContext(c.Context()).Where("worker_id = ?", id).Take(&worker).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load worker")
	}
	return helper.JsonUpdated(c, "Worker updated", worker)
}

// POST /api/a/workers/:id/lift-suspension
func (ctl *WorkerController) LiftSuspension(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid worker id")
	}
	err = ctl.Penalties.LiftSuspension(c.Context(), id)
	if errors.Is(err, attendanceservice.ErrWorkerNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Worker not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to lift suspension")
	}
	return helper.JsonUpdated(c, "Suspension lifted", fiber.Map{"worker_id": id})
}
