package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"diarias_backend/internals/features/attendance/dto"
	"diarias_backend/internals/features/attendance/service"
	helper "diarias_backend/internals/helpers"
	"diarias_backend/internals/middlewares/auth"
)

type AttendanceController struct {
	Service  *service.AttendanceService
	Validate *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Service: svc, Validate: validator.New()}
}

// POST /api/s/attendance
func (ctl *AttendanceController) Record(c *fiber.Ctx) error {
	recordedBy, err := auth.WorkerID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rec, err := ctl.Service.RecordAttendance(c.Context(), service.AttendanceInput{
		EnrollmentID: req.EnrollmentID,
		RecordedBy:   recordedBy,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Note:         req.Note,
	})
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	case errors.Is(err, service.ErrNotConfirmed):
		return helper.JsonError(c, fiber.StatusBadRequest, "Only confirmed enrollments can have attendance recorded")
	case errors.Is(err, service.ErrShiftCancelled):
		return helper.JsonError(c, fiber.StatusBadRequest, "The shift was cancelled")
	case errors.Is(err, service.ErrAlreadyRecorded):
		return helper.JsonError(c, fiber.StatusConflict, "Attendance was already recorded for this enrollment")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}
	return helper.JsonCreated(c, "Attendance recorded", rec)
}
