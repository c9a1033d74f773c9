package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"diarias_backend/internals/features/attendance/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrNotConfirmed       = errors.New("enrollment is not confirmed")
	ErrShiftCancelled     = errors.New("shift was cancelled")
	// ErrAlreadyRecorded: one attendance row per enrollment.
	ErrAlreadyRecorded = errors.New("attendance already recorded for this enrollment")
)

// EnrollmentRef is an enrollment joined with its shift status, flattened for
// the attendance gate.
type EnrollmentRef struct {
	ID          uuid.UUID
	WorkerID    uuid.UUID
	Status      shiftmodel.EnrollmentStatus
	ShiftID     uuid.UUID
	ShiftStatus shiftmodel.ShiftStatus
}

type AttendanceStore interface {
	GetEnrollmentRef(ctx context.Context, enrollmentID uuid.UUID) (*EnrollmentRef, error)
	// CreateAttendance returns ErrAlreadyRecorded on the unique constraint.
	CreateAttendance(ctx context.Context, rec *model.AttendanceRecordModel) error
}

type AttendanceInput struct {
	EnrollmentID uuid.UUID
	RecordedBy   uuid.UUID
	Latitude     *float64
	Longitude    *float64
	Note         string
}

// AttendanceService captures presence proof for confirmed enrollees. The
// record is what shields a worker from the no-show sweep.
type AttendanceService struct {
	store AttendanceStore
}

func NewAttendanceService(store AttendanceStore) *AttendanceService {
	return &AttendanceService{store: store}
}

func (s *AttendanceService) RecordAttendance(ctx context.Context, in AttendanceInput) (*model.AttendanceRecordModel, error) {
	enrollment, err := s.store.GetEnrollmentRef(ctx, in.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}
	if enrollment.ShiftStatus == shiftmodel.ShiftCancelled {
		return nil, ErrShiftCancelled
	}
	if enrollment.Status != shiftmodel.EnrollmentConfirmed {
		return nil, ErrNotConfirmed
	}

	rec := &model.AttendanceRecordModel{
		AttendanceEnrollmentID: in.EnrollmentID,
		AttendanceRecordedBy:   in.RecordedBy,
		AttendanceLatitude:     in.Latitude,
		AttendanceLongitude:    in.Longitude,
		AttendanceNote:         in.Note,
	}
	if err := s.store.CreateAttendance(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
