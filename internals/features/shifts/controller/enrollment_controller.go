package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarias_backend/internals/features/shifts/dto"
	"diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/features/shifts/service"
	helper "diarias_backend/internals/helpers"
	"diarias_backend/internals/helpers/dbtime"
	"diarias_backend/internals/middlewares/auth"
)

// EnrollmentController is the worker-facing surface: browse open shifts,
// enroll, cancel, and review own enrollments.
type EnrollmentController struct {
	DB       *gorm.DB
	Service  *service.EnrollmentService
	Validate *validator.Validate
}

func NewEnrollmentController(db *gorm.DB, svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{DB: db, Service: svc, Validate: validator.New()}
}

// GET /api/u/shifts/available
func (ctl *EnrollmentController) Available(c *fiber.Ctx) error {
	var rows []struct {
		ShiftID        uuid.UUID   `gorm:"column:shift_id"`
		CompanyName    string      `gorm:"column:company_name"`
		ShiftTitle     string      `gorm:"column:shift_title"`
		ShiftDate      time.Time   `gorm:"column:shift_date"`
		ShiftStartTime *dbtime.Tod `gorm:"column:shift_start_time"`
		ShiftEndTime   *dbtime.Tod `gorm:"column:shift_end_time"`
		ShiftSeats     int         `gorm:"column:shift_seats"`
		ShiftRate      float64     `gorm:"column:shift_rate"`
		ShiftLocation  string      `gorm:"column:shift_location"`
		ActiveCount    int64       `gorm:"column:active_count"`
	}
	err := ctl.DB.WithContext(c.Context()).
		Table("shifts").
		Select(`shifts.shift_id, companies.company_name, shifts.shift_title, shifts.shift_date,
			shifts.shift_start_time, shifts.shift_end_time, shifts.shift_seats, shifts.shift_rate, shifts.shift_location,
			COUNT(e.enrollment_id) AS active_count`).
		Joins("JOIN companies ON companies.company_id = shifts.shift_company_id").
		Joins("LEFT JOIN enrollments e ON e.enrollment_shift_id = shifts.shift_id AND e.enrollment_status IN ?",
			[]model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentConfirmed}).
		Where("shifts.shift_status = ?", model.ShiftOpen).
		Where("shifts.shift_date >= ?", time.Now().Format("2006-01-02")).
		Group("shifts.shift_id, companies.company_name").
		Order("shifts.shift_date ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list shifts")
	}

	views := make([]dto.AvailableShiftView, 0, len(rows))
	for _, rw := range rows {
		views = append(views, dto.AvailableShiftView{
			ShiftID:        rw.ShiftID,
			CompanyName:    rw.CompanyName,
			ShiftTitle:     rw.ShiftTitle,
			ShiftDate:      rw.ShiftDate.Format("2006-01-02"),
			ShiftStartTime: rw.ShiftStartTime,
			ShiftEndTime:   rw.ShiftEndTime,
			ShiftSeats:     rw.ShiftSeats,
			OpenSeats:      service.OpenSeats(rw.ShiftSeats, rw.ActiveCount),
			ShiftRate:      rw.ShiftRate,
			ShiftLocation:  rw.ShiftLocation,
		})
	}
	return helper.JsonList(c, "", views, nil)
}

// POST /api/u/enrollments
func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	workerID, err := auth.WorkerID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	enrollment, err := ctl.Service.RequestEnrollment(c.Context(), workerID, req.ShiftID)
	if err != nil {
		return ctl.mapEnrollError(c, err)
	}
	return helper.JsonCreated(c, "Enrollment requested", enrollment)
}

// GET /api/u/enrollments
func (ctl *EnrollmentController) MyEnrollments(c *fiber.Ctx) error {
	workerID, err := auth.WorkerID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []struct {
		EnrollmentID     uuid.UUID              `gorm:"column:enrollment_id"`
		EnrollmentStatus model.EnrollmentStatus `gorm:"column:enrollment_status"`
		ShiftID          uuid.UUID              `gorm:"column:shift_id"`
		ShiftTitle       string                 `gorm:"column:shift_title"`
		ShiftDate        time.Time              `gorm:"column:shift_date"`
		ShiftStartTime   *dbtime.Tod            `gorm:"column:shift_start_time"`
		ShiftEndTime     *dbtime.Tod            `gorm:"column:shift_end_time"`
		ShiftLocation    string                 `gorm:"column:shift_location"`
	}
	err = ctl.DB.WithContext(c.Context()).
		Table("enrollments").
		Select(`enrollments.enrollment_id, enrollments.enrollment_status, shifts.shift_id, shifts.shift_title,
			shifts.shift_date, shifts.shift_start_time, shifts.shift_end_time, shifts.shift_location`).
		Joins("JOIN shifts ON shifts.shift_id = enrollments.enrollment_shift_id").
		Where("enrollments.enrollment_worker_id = ?", workerID).
		Order("shifts.shift_date DESC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list enrollments")
	}

	views := make([]dto.MyEnrollmentView, 0, len(rows))
	for _, rw := range rows {
		views = append(views, dto.MyEnrollmentView{
			EnrollmentID:     rw.EnrollmentID,
			EnrollmentStatus: rw.EnrollmentStatus,
			ShiftID:          rw.ShiftID,
			ShiftTitle:       rw.ShiftTitle,
			ShiftDate:        rw.ShiftDate.Format("2006-01-02"),
			ShiftStartTime:   rw.ShiftStartTime,
			ShiftEndTime:     rw.ShiftEndTime,
			ShiftLocation:    rw.ShiftLocation,
		})
	}
	return helper.JsonList(c, "", views, nil)
}

// POST /api/u/enrollments/:id/cancel
func (ctl *EnrollmentController) Cancel(c *fiber.Ctx) error {
	workerID, err := auth.WorkerID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	enrollmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment id")
	}

	view, err := ctl.Service.CancelEnrollment(c.Context(), workerID, enrollmentID)
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	case errors.Is(err, service.ErrNotOwner):
		return helper.JsonError(c, fiber.StatusForbidden, "This enrollment belongs to another worker")
	case errors.Is(err, service.ErrCancelClosed):
		return helper.JsonError(c, fiber.StatusBadRequest, "The shift is no longer open, contact the operator to cancel")
	case errors.Is(err, service.ErrNotCancellable):
		return helper.JsonError(c, fiber.StatusBadRequest, "This enrollment can no longer be cancelled")
	case errors.Is(err, service.ErrVersionConflict):
		return helper.JsonError(c, fiber.StatusConflict, "The enrollment changed, refresh and try again")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel enrollment")
	}
	return helper.JsonUpdated(c, "Enrollment cancelled", view)
}

func (ctl *EnrollmentController) mapEnrollError(c *fiber.Ctx, err error) error {
	var elig *service.EligibilityError
	if errors.As(err, &elig) {
		status := fiber.StatusBadRequest
		if elig.Code == service.CodeWorkerSuspended {
			status = fiber.StatusForbidden
		}
		return helper.JsonErrorCode(c, status, string(elig.Code), elig.Message)
	}
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Shift not found")
	case errors.Is(err, service.ErrWorkerNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Worker not found")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create enrollment")
}
