package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"diarias_backend/internals/features/attendance/model"
	"diarias_backend/internals/features/attendance/service"
	shiftmodel "diarias_backend/internals/features/shifts/model"
	workermodel "diarias_backend/internals/features/workers/model"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

var (
	_ service.PenaltyStore    = (*AttendanceRepository)(nil)
	_ service.ReconcileStore  = (*AttendanceRepository)(nil)
	_ service.AttendanceStore = (*AttendanceRepository)(nil)
)

/* =========================================================
   PenaltyStore
========================================================= */

func (r *AttendanceRepository) GetWorkerSuspension(ctx context.Context, id uuid.UUID) (*service.WorkerSuspension, error) {
	var m workermodel.WorkerModel
	err := r.db.WithContext(ctx).Where("worker_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := &service.WorkerSuspension{
		ID:        m.WorkerID,
		Name:      m.WorkerName,
		Suspended: m.WorkerSuspended,
	}
	if m.WorkerSuspendedUntil != nil {
		until := time.Time(*m.WorkerSuspendedUntil)
		out.Until = &until
	}
	return out, nil
}

func (r *AttendanceRepository) UpdateSuspension(ctx context.Context, id uuid.UUID, suspended bool, until *time.Time, reason string) error {
	values := map[string]any{
		"worker_suspended":         suspended,
		"worker_suspension_reason": reason,
	}
	if until != nil {
		values["worker_suspended_until"] = datatypes.Date(*until)
	} else {
		values["worker_suspended_until"] = nil
	}
	return r.db.WithContext(ctx).Model(&workermodel.WorkerModel{}).
		Where("worker_id = ?", id).
		Updates(values).Error
}

/* =========================================================
   ReconcileStore
========================================================= */

func (r *AttendanceRepository) OpenShiftsStartingBefore(ctx context.Context, cutoff time.Time) ([]service.ShiftRef, error) {
	var rows []struct {
		ShiftID      uuid.UUID `gorm:"column:shift_id"`
		ShiftTitle   string    `gorm:"column:shift_title"`
		ShiftVersion int       `gorm:"column:shift_version"`
	}
	err := r.db.WithContext(ctx).
		Table("shifts").
		Select("shift_id, shift_title, shift_version").
		Where("shift_status = ?", shiftmodel.ShiftOpen).
		Where("(shift_date + COALESCE(shift_start_time, TIME '00:00:00')) <= ?", cutoff).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toShiftRefs(rows), nil
}

func (r *AttendanceRepository) CloseShift(ctx context.Context, id uuid.UUID, version int) error {
	res := r.db.WithContext(ctx).Model(&shiftmodel.ShiftModel{}).
		Where("shift_id = ? AND shift_version = ? AND shift_status = ?", id, version, shiftmodel.ShiftOpen).
		Updates(map[string]any{
			"shift_status":  shiftmodel.ShiftClosed,
			"shift_version": gorm.Expr("shift_version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrStaleRecord
	}
	return nil
}

func (r *AttendanceRepository) FinishedShifts(ctx context.Context, now time.Time) ([]service.ShiftRef, error) {
	var rows []struct {
		ShiftID      uuid.UUID `gorm:"column:shift_id"`
		ShiftTitle   string    `gorm:"column:shift_title"`
		ShiftVersion int       `gorm:"column:shift_version"`
	}
	err := r.db.WithContext(ctx).
		Table("shifts").
		Select("shift_id, shift_title, shift_version").
		Where("shift_status IN ?", []shiftmodel.ShiftStatus{shiftmodel.ShiftInProgress, shiftmodel.ShiftCompleted}).
		Where("(shift_date + COALESCE(shift_end_time, TIME '23:59:59')) < ?", now).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toShiftRefs(rows), nil
}

func (r *AttendanceRepository) UnattendedConfirmed(ctx context.Context, shiftID uuid.UUID) ([]service.NoShowCandidate, error) {
	var rows []struct {
		EnrollmentID      uuid.UUID `gorm:"column:enrollment_id"`
		WorkerID          uuid.UUID `gorm:"column:worker_id"`
		WorkerName        string    `gorm:"column:worker_name"`
		EnrollmentVersion int       `gorm:"column:enrollment_version"`
	}
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("enrollments.enrollment_id, workers.worker_id, workers.worker_name, enrollments.enrollment_version").
		Joins("JOIN workers ON workers.worker_id = enrollments.enrollment_worker_id").
		Joins("LEFT JOIN attendance_records ON attendance_records.attendance_enrollment_id = enrollments.enrollment_id").
		Where("enrollments.enrollment_shift_id = ?", shiftID).
		Where("enrollments.enrollment_status = ?", shiftmodel.EnrollmentConfirmed).
		Where("attendance_records.attendance_id IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]service.NoShowCandidate, 0, len(rows))
	for _, rw := range rows {
		out = append(out, service.NoShowCandidate{
			EnrollmentID: rw.EnrollmentID,
			WorkerID:     rw.WorkerID,
			WorkerName:   rw.WorkerName,
			Version:      rw.EnrollmentVersion,
		})
	}
	return out, nil
}

func (r *AttendanceRepository) MarkNoShow(ctx context.Context, enrollmentID uuid.UUID, version int) error {
	res := r.db.WithContext(ctx).Model(&shiftmodel.EnrollmentModel{}).
		Where("enrollment_id = ? AND enrollment_version = ? AND enrollment_status = ?",
			enrollmentID, version, shiftmodel.EnrollmentConfirmed).
		Updates(map[string]any{
			"enrollment_status":  shiftmodel.EnrollmentNoShow,
			"enrollment_version": gorm.Expr("enrollment_version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrStaleRecord
	}
	return nil
}

/* =========================================================
   AttendanceStore
========================================================= */

func (r *AttendanceRepository) GetEnrollmentRef(ctx context.Context, enrollmentID uuid.UUID) (*service.EnrollmentRef, error) {
	var row struct {
		EnrollmentID     uuid.UUID                   `gorm:"column:enrollment_id"`
		WorkerID         uuid.UUID                   `gorm:"column:enrollment_worker_id"`
		EnrollmentStatus shiftmodel.EnrollmentStatus `gorm:"column:enrollment_status"`
		ShiftID          uuid.UUID                   `gorm:"column:shift_id"`
		ShiftStatus      shiftmodel.ShiftStatus      `gorm:"column:shift_status"`
	}
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("enrollments.enrollment_id, enrollments.enrollment_worker_id, enrollments.enrollment_status, shifts.shift_id, shifts.shift_status").
		Joins("JOIN shifts ON shifts.shift_id = enrollments.enrollment_shift_id").
		Where("enrollments.enrollment_id = ?", enrollmentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service.EnrollmentRef{
		ID:          row.EnrollmentID,
		WorkerID:    row.WorkerID,
		Status:      row.EnrollmentStatus,
		ShiftID:     row.ShiftID,
		ShiftStatus: row.ShiftStatus,
	}, nil
}

func (r *AttendanceRepository) CreateAttendance(ctx context.Context, rec *model.AttendanceRecordModel) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key")) {
		return service.ErrAlreadyRecorded
	}
	return err
}

func toShiftRefs(rows []struct {
	ShiftID      uuid.UUID `gorm:"column:shift_id"`
	ShiftTitle   string    `gorm:"column:shift_title"`
	ShiftVersion int       `gorm:"column:shift_version"`
}) []service.ShiftRef {
	out := make([]service.ShiftRef, 0, len(rows))
	for _, rw := range rows {
		out = append(out, service.ShiftRef{
			ID:      rw.ShiftID,
			Title:   rw.ShiftTitle,
			Version: rw.ShiftVersion,
		})
	}
	return out
}
