package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/features/shifts/service"
	workermodel "diarias_backend/internals/features/workers/model"
	"diarias_backend/internals/helpers/dbtime"
)

// ShiftRepository backs the eligibility checker with flat, fully-loaded
// views. No lazy relationship traversal: every method states the joined
// shape it returns.
type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

var _ service.EligibilityStore = (*ShiftRepository)(nil)

func (r *ShiftRepository) GetWorker(ctx context.Context, id uuid.UUID) (*service.WorkerInfo, error) {
	var m workermodel.WorkerModel
	err := r.db.WithContext(ctx).Where("worker_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	info := &service.WorkerInfo{
		ID:               m.WorkerID,
		Name:             m.WorkerName,
		Suspended:        m.WorkerSuspended,
		SuspensionReason: m.WorkerSuspensionReason,
		BoardingPointID:  m.WorkerBoardingPointID,
	}
	if m.WorkerSuspendedUntil != nil {
		until := time.Time(*m.WorkerSuspendedUntil)
		info.SuspendedUntil = &until
	}
	return info, nil
}

func (r *ShiftRepository) GetShift(ctx context.Context, id uuid.UUID) (*service.ShiftInfo, error) {
	var m model.ShiftModel
	err := r.db.WithContext(ctx).Where("shift_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service.ShiftInfo{
		ID:        m.ShiftID,
		Title:     m.ShiftTitle,
		Date:      time.Time(m.ShiftDate),
		StartTime: m.ShiftStartTime,
		EndTime:   m.ShiftEndTime,
		Seats:     m.ShiftSeats,
		Status:    m.ShiftStatus,
	}, nil
}

func (r *ShiftRepository) FindEnrollment(ctx context.Context, workerID, shiftID uuid.UUID) (*service.EnrollmentView, error) {
	var m model.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("enrollment_worker_id = ? AND enrollment_shift_id = ?", workerID, shiftID).
		Order("enrollment_created_at DESC").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return enrollmentView(&m), nil
}

func (r *ShiftRepository) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		Delete(&model.EnrollmentModel{}).Error
}

func (r *ShiftRepository) ActiveEnrollmentsForWorker(ctx context.Context, workerID uuid.UUID) ([]service.ActiveEnrollment, error) {
	var rows []struct {
		EnrollmentID uuid.UUID   `gorm:"column:enrollment_id"`
		ShiftID      uuid.UUID   `gorm:"column:shift_id"`
		ShiftDate    time.Time   `gorm:"column:shift_date"`
		StartTime    *dbtime.Tod `gorm:"column:shift_start_time"`
		EndTime      *dbtime.Tod `gorm:"column:shift_end_time"`
	}
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("enrollments.enrollment_id, shifts.shift_id, shifts.shift_date, shifts.shift_start_time, shifts.shift_end_time").
		Joins("JOIN shifts ON shifts.shift_id = enrollments.enrollment_shift_id").
		Where("enrollments.enrollment_worker_id = ?", workerID).
		Where("enrollments.enrollment_status IN ?", []model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentConfirmed}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]service.ActiveEnrollment, 0, len(rows))
	for _, rw := range rows {
		out = append(out, service.ActiveEnrollment{
			EnrollmentID: rw.EnrollmentID,
			ShiftID:      rw.ShiftID,
			ShiftDate:    rw.ShiftDate,
			StartTime:    rw.StartTime,
			EndTime:      rw.EndTime,
		})
	}
	return out, nil
}

func (r *ShiftRepository) CountActiveEnrollments(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EnrollmentModel{}).
		Where("enrollment_shift_id = ?", shiftID).
		Where("enrollment_status IN ?", []model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentConfirmed}).
		Count(&count).Error
	return count, err
}

// CreateEnrollment re-checks the seat quota while holding a FOR UPDATE lock
// on the shift row, so two racing requests cannot both take the last seat.
func (r *ShiftRepository) CreateEnrollment(ctx context.Context, workerID, shiftID uuid.UUID) (*model.EnrollmentModel, error) {
	enrollment := &model.EnrollmentModel{
		EnrollmentShiftID:  shiftID,
		EnrollmentWorkerID: workerID,
		EnrollmentStatus:   model.EnrollmentPending,
		EnrollmentVersion:  1,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift model.ShiftModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("shift_id = ?", shiftID).
			Take(&shift).Error; err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_shift_id = ?", shiftID).
			Where("enrollment_status IN ?", []model.EnrollmentStatus{model.EnrollmentPending, model.EnrollmentConfirmed}).
			Count(&active).Error; err != nil {
			return err
		}
		if service.OpenSeats(shift.ShiftSeats, active) <= 0 {
			return service.ErrSeatsTaken
		}
		return tx.Create(enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (r *ShiftRepository) GetEnrollment(ctx context.Context, id uuid.UUID) (*service.EnrollmentView, error) {
	var m model.EnrollmentModel
	err := r.db.WithContext(ctx).Where("enrollment_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return enrollmentView(&m), nil
}

// UpdateEnrollmentStatus is a compare-and-swap on the version column.
func (r *ShiftRepository) UpdateEnrollmentStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus, version int) error {
	res := r.db.WithContext(ctx).Model(&model.EnrollmentModel{}).
		Where("enrollment_id = ? AND enrollment_version = ?", id, version).
		Updates(map[string]any{
			"enrollment_status":  status,
			"enrollment_version": gorm.Expr("enrollment_version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrVersionConflict
	}
	return nil
}

func enrollmentView(m *model.EnrollmentModel) *service.EnrollmentView {
	return &service.EnrollmentView{
		ID:       m.EnrollmentID,
		ShiftID:  m.EnrollmentShiftID,
		WorkerID: m.EnrollmentWorkerID,
		Status:   m.EnrollmentStatus,
		Version:  m.EnrollmentVersion,
	}
}
