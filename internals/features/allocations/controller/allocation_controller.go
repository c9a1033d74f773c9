package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"diarias_backend/internals/features/allocations/dto"
	"diarias_backend/internals/features/allocations/repository"
	"diarias_backend/internals/features/allocations/service"
	helper "diarias_backend/internals/helpers"
	"diarias_backend/internals/helpers/dbtime"
	"diarias_backend/internals/middlewares/auth"
)

// Shuttles leave at 07:00 unless the operator says otherwise.
const defaultDepartureTime = "07:00"

type AllocationController struct {
	Planner  *service.PlannerService
	Repo     *repository.AllocationRepository
	Validate *validator.Validate
}

func NewAllocationController(planner *service.PlannerService, repo *repository.AllocationRepository) *AllocationController {
	return &AllocationController{Planner: planner, Repo: repo, Validate: validator.New()}
}

// POST /api/a/shifts/:id/allocations/generate
func (ctl *AllocationController) Generate(c *fiber.Ctx) error {
	shiftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift id")
	}

	var req dto.GenerateAllocationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}
	if req.DepartureTime == "" {
		req.DepartureTime = defaultDepartureTime
	}
	departure, err := dbtime.Parse(req.DepartureTime)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid departure time")
	}

	result, err := ctl.Planner.GeneratePlan(c.Context(), shiftID, departure)
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Shift not found")
	case errors.Is(err, service.ErrShiftNotPlannable):
		return helper.JsonError(c, fiber.StatusBadRequest, "Allocation is only possible before the shift starts")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate allocation")
	}
	return helper.JsonOK(c, result.Message, result)
}

// GET /api/a/shifts/:id/allocations
func (ctl *AllocationController) GetShiftAllocations(c *fiber.Ctx) error {
	shiftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift id")
	}
	views, err := ctl.Repo.GetShiftAllocations(c.Context(), shiftID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load allocations")
	}
	return helper.JsonList(c, "", views, nil)
}

// GET /api/u/my-allocations
func (ctl *AllocationController) MyAllocations(c *fiber.Ctx) error {
	workerID, err := auth.WorkerID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	views, err := ctl.Repo.GetMyAllocations(c.Context(), workerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load allocations")
	}
	return helper.JsonList(c, "", views, nil)
}
