package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"diarias_backend/internals/features/shifts/dto"
	"diarias_backend/internals/features/shifts/model"
	helper "diarias_backend/internals/helpers"
	"diarias_backend/internals/helpers/dbtime"
)

// ShiftAdminController manages the shift lifecycle and the roster from the
// operator's side.
type ShiftAdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewShiftAdminController(db *gorm.DB) *ShiftAdminController {
	return &ShiftAdminController{DB: db, Validate: validator.New()}
}

// POST /api/a/shifts
func (ctl *ShiftAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift date")
	}

	shift := model.ShiftModel{
		ShiftCompanyID:    req.ShiftCompanyID,
		ShiftSupervisorID: req.ShiftSupervisorID,
		ShiftTitle:        req.ShiftTitle,
		ShiftDescription:  req.ShiftDescription,
		ShiftDate:         datatypes.Date(date),
		ShiftSeats:        req.ShiftSeats,
		ShiftRate:         req.ShiftRate,
		ShiftLocation:     req.ShiftLocation,
		ShiftStatus:       model.ShiftOpen,
		ShiftVersion:      1,
	}
	if shift.ShiftStartTime, err = parseTodPtr(req.ShiftStartTime); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start time")
	}
	if shift.ShiftEndTime, err = parseTodPtr(req.ShiftEndTime); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end time")
	}

	if err := ctl.DB.WithContext(c.Context()).Create(&shift).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create shift")
	}
	return helper.JsonCreated(c, "Shift created", shift)
}

// GET /api/a/shifts?status=&date=
func (ctl *ShiftAdminController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Order("shift_date DESC, shift_created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("shift_status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date filter")
		}
		q = q.Where("shift_date = ?", date)
	}

	var shifts []model.ShiftModel
	if err := q.Find(&shifts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list shifts")
	}
	return helper.JsonList(c, "", shifts, nil)
}

// GET /api/a/shifts/:id
func (ctl *ShiftAdminController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift id")
	}
	var shift model.ShiftModel
	err = ctl.DB.WithContext(c.Context()).Where("shift_id = ?", id).Take(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Shift not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load shift")
	}
	return helper.JsonOK(c, "", shift)
}

// PATCH /api/a/shifts/:id
func (ctl *ShiftAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift id")
	}
	var req dto.UpdateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var shift model.ShiftModel
	err = ctl.DB.WithContext(c.Context()).Where("shift_id = ?", id).Take(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Shift not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load shift")
	}
	if shift.ShiftStatus == model.ShiftCompleted || shift.ShiftStatus == model.ShiftCancelled {
		return helper.JsonError(c, fiber.StatusBadRequest, "A finished shift cannot be edited")
	}

	values := map[string]any{}
	if req.ShiftSupervisorID != nil {
		values["shift_supervisor_id"] = *req.ShiftSupervisorID
	}
	if req.ShiftTitle != nil {
		values["shift_title"] = *req.ShiftTitle
	}
	if req.ShiftDescription != nil {
		values["shift_description"] = *req.ShiftDescription
	}
	if req.ShiftDate != nil {
		date, err := time.Parse("2006-01-02", *req.ShiftDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift date")
		}
		values["shift_date"] = datatypes.Date(date)
	}
	if req.ShiftStartTime != nil {
		tod, err := parseTodPtr(req.ShiftStartTime)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start time")
		}
		values["shift_start_time"] = tod
	}
	if req.ShiftEndTime != nil {
		tod, err := parseTodPtr(req.ShiftEndTime)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end time")
		}
		values["shift_end_time"] = tod
	}
	if req.ShiftSeats != nil {
		values["shift_seats"] = *req.ShiftSeats
	}
	if req.ShiftRate != nil {
		values["shift_rate"] = *req.ShiftRate
	}
	if req.ShiftLocation != nil {
		values["shift_location"] = *req.ShiftLocation
	}
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&model.ShiftModel{}).
		Where("shift_id = ?", id).
		Updates(values).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update shift")
	}

	if err := ctl.DB.WithContext(c.Context()).Where("shift_id = ?", id).Take(&shift).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load shift")
	}
	return helper.JsonUpdated(c, "Shift updated", shift)
}

// PATCH /api/a/shifts/:id/status
func (ctl *ShiftAdminController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift id")
	}
	var req dto.UpdateShiftStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var shift model.ShiftModel
	err = ctl.DB.WithContext(c.Context()).Where("shift_id = ?", id).Take(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Shift not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load shift")
	}
	if !shift.ShiftStatus.CanTransition(req.Status) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Cannot move shift from "+string(shift.ShiftStatus)+" to "+string(req.Status))
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.ShiftModel{}).
		Where("shift_id = ? AND shift_version = ?", id, shift.ShiftVersion).
		Updates(map[string]any{
			"shift_status":  req.Status,
			"shift_version": gorm.Expr("shift_version + 1"),
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update shift status")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusConflict, "The shift changed, refresh and try again")
	}
	return helper.JsonUpdated(c, "Shift status updated", fiber.Map{
		"shift_id": id,
		"status":   req.Status,
	})
}

// GET /api/a/shifts/:id/enrollments
func (ctl *ShiftAdminController) ListEnrollments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid shift id")
	}

	var rows []struct {
		EnrollmentID     uuid.UUID              `gorm:"column:enrollment_id"`
		EnrollmentStatus model.EnrollmentStatus `gorm:"column:enrollment_status"`
		WorkerID         uuid.UUID              `gorm:"column:worker_id"`
		WorkerName       string                 `gorm:"column:worker_name"`
		WorkerPhone      string                 `gorm:"column:worker_phone"`
		PointID          *uuid.UUID             `gorm:"column:worker_boarding_point_id"`
	}
	err = ctl.DB.WithContext(c.Context()).
		Table("enrollments").
		Select(`enrollments.enrollment_id, enrollments.enrollment_status, workers.worker_id,
			workers.worker_name, workers.worker_phone, workers.worker_boarding_point_id`).
		Joins("JOIN workers ON workers.worker_id = enrollments.enrollment_worker_id").
		Where("enrollments.enrollment_shift_id = ?", id).
		Order("enrollments.enrollment_created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list enrollments")
	}

	views := make([]dto.ShiftEnrollmentView, 0, len(rows))
	for _, rw := range rows {
		views = append(views, dto.ShiftEnrollmentView{
			EnrollmentID:     rw.EnrollmentID,
			EnrollmentStatus: rw.EnrollmentStatus,
			WorkerID:         rw.WorkerID,
			WorkerName:       rw.WorkerName,
			WorkerPhone:      rw.WorkerPhone,
			HasBoardingPoint: rw.PointID != nil,
		})
	}
	return helper.JsonList(c, "", views, nil)
}

// PATCH /api/a/enrollments/:id/status
func (ctl *ShiftAdminController) OverrideEnrollmentStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment id")
	}
	var req dto.OverrideEnrollmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var enrollment model.EnrollmentModel
	err = ctl.DB.WithContext(c.Context()).Where("enrollment_id = ?", id).Take(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load enrollment")
	}
	if !enrollment.EnrollmentStatus.CanTransition(req.Status) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Cannot move enrollment from "+string(enrollment.EnrollmentStatus)+" to "+string(req.Status))
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.EnrollmentModel{}).
		Where("enrollment_id = ? AND enrollment_version = ?", id, enrollment.EnrollmentVersion).
		Updates(map[string]any{
			"enrollment_status":  req.Status,
			"enrollment_version": gorm.Expr("enrollment_version + 1"),
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update enrollment")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusConflict, "The enrollment changed, refresh and try again")
	}
	return helper.JsonUpdated(c, "Enrollment status updated", fiber.Map{
		"enrollment_id": id,
		"status":        req.Status,
	})
}

func parseTodPtr(s *string) (*dbtime.Tod, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	tod, err := dbtime.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &tod, nil
}
