package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"diarias_backend/internals/features/shifts/model"
	"diarias_backend/internals/helpers/dbtime"
)

// MinRestInterval: mandatory gap between one shift's end and the next
// shift's start for the same worker. A gap of exactly 11h is allowed.
const MinRestInterval = 11 * time.Hour

/* =========================================================
   Eligibility errors
========================================================= */

type EligibilityCode string

const (
	CodeWorkerSuspended EligibilityCode = "worker_suspended"
	CodeShiftNotOpen    EligibilityCode = "shift_not_open"
	CodeShiftPast       EligibilityCode = "shift_past"
	CodeAlreadyEnrolled EligibilityCode = "already_enrolled"
	CodeRestInterval    EligibilityCode = "rest_interval"
	CodeNoSeats         EligibilityCode = "no_seats"
)

// EligibilityError is an expected business-rule rejection. It is surfaced to
// the caller with a specific reason and is never retried.
type EligibilityError struct {
	Code    EligibilityCode
	Message string
}

func (e *EligibilityError) Error() string { return e.Message }

func reject(code EligibilityCode, format string, args ...any) error {
	return &EligibilityError{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrNotOwner           = errors.New("enrollment belongs to another worker")
	ErrCancelClosed       = errors.New("shift is no longer open for cancellation")
	ErrNotCancellable     = errors.New("enrollment cannot be cancelled")
	ErrVersionConflict    = errors.New("record changed concurrently, retry")
	// ErrSeatsTaken is returned by the store when the locked re-check finds
	// the shift full between the eligibility read and the insert.
	ErrSeatsTaken = errors.New("no seats left")
)

/* =========================================================
   Flat views + store contract
========================================================= */

type WorkerInfo struct {
	ID               uuid.UUID
	Name             string
	Suspended        bool
	SuspendedUntil   *time.Time // date-only, nil = indefinite when Suspended
	SuspensionReason string
	BoardingPointID  *uuid.UUID
}

type ShiftInfo struct {
	ID        uuid.UUID
	Title     string
	Date      time.Time // midnight of the shift's calendar date
	StartTime *dbtime.Tod
	EndTime   *dbtime.Tod
	Seats     int
	Status    model.ShiftStatus
}

type EnrollmentView struct {
	ID       uuid.UUID
	ShiftID  uuid.UUID
	WorkerID uuid.UUID
	Status   model.EnrollmentStatus
	Version  int
}

// ActiveEnrollment is an active enrollment joined with its shift window.
type ActiveEnrollment struct {
	EnrollmentID uuid.UUID
	ShiftID      uuid.UUID
	ShiftDate    time.Time
	StartTime    *dbtime.Tod
	EndTime      *dbtime.Tod
}

type EligibilityStore interface {
	GetWorker(ctx context.Context, id uuid.UUID) (*WorkerInfo, error)
	GetShift(ctx context.Context, id uuid.UUID) (*ShiftInfo, error)
	// FindEnrollment returns the worker's enrollment for the shift in any
	// status, or nil when none exists.
	FindEnrollment(ctx context.Context, workerID, shiftID uuid.UUID) (*EnrollmentView, error)
	DeleteEnrollment(ctx context.Context, id uuid.UUID) error
	ActiveEnrollmentsForWorker(ctx context.Context, workerID uuid.UUID) ([]ActiveEnrollment, error)
	CountActiveEnrollments(ctx context.Context, shiftID uuid.UUID) (int64, error)
	// CreateEnrollment inserts a PENDING row after re-checking the seat
	// count under a shift row lock; returns ErrSeatsTaken when full.
	CreateEnrollment(ctx context.Context, workerID, shiftID uuid.UUID) (*model.EnrollmentModel, error)
	GetEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentView, error)
	// UpdateEnrollmentStatus applies a compare-and-swap on the version
	// column; returns ErrVersionConflict when the row moved underneath.
	UpdateEnrollmentStatus(ctx context.Context, id uuid.UUID, status model.EnrollmentStatus, version int) error
}

/* =========================================================
   Service
========================================================= */

// EnrollmentService gates enrollment creation and handles worker-side
// cancellation. All suspension fields are read-only here.
type EnrollmentService struct {
	store EligibilityStore
	now   func() time.Time
}

func NewEnrollmentService(store EligibilityStore) *EnrollmentService {
	return &EnrollmentService{store: store, now: time.Now}
}

// WithClock overrides the wall clock (tests).
func (s *EnrollmentService) WithClock(now func() time.Time) *EnrollmentService {
	s.now = now
	return s
}

// OpenSeats: seat quota minus active enrollments, clamped at zero.
func OpenSeats(seats int, activeCount int64) int {
	open := seats - int(activeCount)
	if open < 0 {
		return 0
	}
	return open
}

// RequestEnrollment validates a worker against a shift and creates a PENDING
// enrollment, or fails with a single *EligibilityError.
func (s *EnrollmentService) RequestEnrollment(ctx context.Context, workerID, shiftID uuid.UUID) (*model.EnrollmentModel, error) {
	now := s.now()
	today := midnight(now)

	worker, err := s.store.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}
	if worker.Suspended {
		if worker.SuspendedUntil == nil {
			return nil, reject(CodeWorkerSuspended, "You are suspended indefinitely. Reason: %s", reasonOrDefault(worker.SuspensionReason))
		}
		if !worker.SuspendedUntil.Before(today) {
			return nil, reject(CodeWorkerSuspended, "You are suspended until %s. Reason: %s",
				worker.SuspendedUntil.Format("02/01/2006"), reasonOrDefault(worker.SuspensionReason))
		}
	}

	shift, err := s.store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if shift.Status != model.ShiftOpen {
		return nil, reject(CodeShiftNotOpen, "This shift is not open for enrollment")
	}
	if shift.Date.Before(today) {
		return nil, reject(CodeShiftPast, "This shift has already passed")
	}

	existing, err := s.store.FindEnrollment(ctx, workerID, shiftID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status.IsActive() {
			return nil, reject(CodeAlreadyEnrolled, "You are already enrolled in this shift")
		}
		// Cancelled/rejected records are superseded by a fresh attempt.
		if err := s.store.DeleteEnrollment(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	if err := s.checkRestInterval(ctx, workerID, shift); err != nil {
		return nil, err
	}

	activeCount, err := s.store.CountActiveEnrollments(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if OpenSeats(shift.Seats, activeCount) <= 0 {
		return nil, reject(CodeNoSeats, "No seats left for this shift")
	}

	enrollment, err := s.store.CreateEnrollment(ctx, workerID, shiftID)
	if errors.Is(err, ErrSeatsTaken) {
		return nil, reject(CodeNoSeats, "No seats left for this shift")
	}
	return enrollment, err
}

// checkRestInterval enforces the 11-hour rest rule against every other
// active enrollment of the worker. Three comparisons close both temporal
// directions plus direct overlap; the first violation wins.
func (s *EnrollmentService) checkRestInterval(ctx context.Context, workerID uuid.UUID, shift *ShiftInfo) error {
	others, err := s.store.ActiveEnrollmentsForWorker(ctx, workerID)
	if err != nil {
		return err
	}
	candStart := windowStart(shift.Date, shift.StartTime)
	candEnd := windowEnd(shift.Date, shift.EndTime)

	for _, other := range others {
		if other.ShiftID == shift.ID {
			continue
		}
		otherStart := windowStart(other.ShiftDate, other.StartTime)
		otherEnd := windowEnd(other.ShiftDate, other.EndTime)
		day := other.ShiftDate.Format("02/01")

		// Candidate starts after the other ends, but less than 11h later.
		if candStart.After(otherEnd) && candStart.Before(otherEnd.Add(MinRestInterval)) {
			return reject(CodeRestInterval, "You need at least 11 hours of rest after your shift on %s", day)
		}
		// Candidate ends before the other starts, but less than 11h earlier.
		if candEnd.Before(otherStart) && candEnd.After(otherStart.Add(-MinRestInterval)) {
			return reject(CodeRestInterval, "You need at least 11 hours of rest before your shift on %s", day)
		}
		// Direct overlap.
		if candStart.Before(otherEnd) && candEnd.After(otherStart) {
			return reject(CodeRestInterval, "This shift conflicts with your enrollment on %s", day)
		}
	}
	return nil
}

// CancelEnrollment: worker cancels their own enrollment while the shift is
// still open. The status flip is a compare-and-swap on the row version.
func (s *EnrollmentService) CancelEnrollment(ctx context.Context, workerID, enrollmentID uuid.UUID) (*EnrollmentView, error) {
	enrollment, err := s.store.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}
	if enrollment.WorkerID != workerID {
		return nil, ErrNotOwner
	}

	shift, err := s.store.GetShift(ctx, enrollment.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if shift.Status != model.ShiftOpen {
		return nil, ErrCancelClosed
	}
	if !enrollment.Status.IsActive() {
		return nil, ErrNotCancellable
	}

	if err := s.store.UpdateEnrollmentStatus(ctx, enrollmentID, model.EnrollmentCancelled, enrollment.Version); err != nil {
		return nil, err
	}
	enrollment.Status = model.EnrollmentCancelled
	enrollment.Version++
	return enrollment, nil
}

/* =========================================================
   Window helpers
========================================================= */

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// windowStart: shift start datetime; an open-ended start means midnight.
func windowStart(date time.Time, start *dbtime.Tod) time.Time {
	if start != nil {
		return start.On(date)
	}
	return midnight(date)
}

// windowEnd: shift end datetime; an open-ended end means end of day.
func windowEnd(date time.Time, end *dbtime.Tod) time.Time {
	if end != nil {
		return end.On(date)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, date.Location())
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "missed shift without justification"
	}
	return reason
}
