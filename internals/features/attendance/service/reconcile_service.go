package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// ErrStaleRecord: a compare-and-swap found the row already changed. The
// reconciler treats it as "someone else got there first" and moves on.
var ErrStaleRecord = errors.New("record changed concurrently")

// ShiftRef is the slice of a shift the reconciler acts on.
type ShiftRef struct {
	ID      uuid.UUID
	Title   string
	Version int
}

// NoShowCandidate: a confirmed enrollee with no attendance record after the
// shift ended.
type NoShowCandidate struct {
	EnrollmentID uuid.UUID
	WorkerID     uuid.UUID
	WorkerName   string
	Version      int
}

type ReconcileStore interface {
	// OpenShiftsStartingBefore returns OPEN shifts whose start datetime is
	// at or before the cutoff.
	OpenShiftsStartingBefore(ctx context.Context, cutoff time.Time) ([]ShiftRef, error)
	// CloseShift flips OPEN -> CLOSED with a version check; returns
	// ErrStaleRecord when the shift moved underneath.
	CloseShift(ctx context.Context, id uuid.UUID, version int) error
	// FinishedShifts returns IN_PROGRESS/COMPLETED shifts whose effective
	// end datetime is before now.
	FinishedShifts(ctx context.Context, now time.Time) ([]ShiftRef, error)
	UnattendedConfirmed(ctx context.Context, shiftID uuid.UUID) ([]NoShowCandidate, error)
	// MarkNoShow flips CONFIRMED -> NO_SHOW with a version check.
	MarkNoShow(ctx context.Context, enrollmentID uuid.UUID, version int) error
}

// ReconcileService closes shifts approaching their start and turns missing
// attendance into no-shows with a suspension. Both passes tolerate partial
// failure: one bad row never stops the sweep.
type ReconcileService struct {
	store     ReconcileStore
	penalties *PenaltyService
	lookahead time.Duration
	now       func() time.Time
}

func NewReconcileService(store ReconcileStore, penalties *PenaltyService, lookahead time.Duration) *ReconcileService {
	return &ReconcileService{
		store:     store,
		penalties: penalties,
		lookahead: lookahead,
		now:       time.Now,
	}
}

// WithClock overrides the wall clock (tests).
func (s *ReconcileService) WithClock(now func() time.Time) *ReconcileService {
	s.now = now
	return s
}

// CloseDueShifts freezes enrollment on every OPEN shift starting within the
// lookahead window. Returns how many shifts were closed.
func (s *ReconcileService) CloseDueShifts(ctx context.Context) (int, error) {
	cutoff := s.now().Add(s.lookahead)
	shifts, err := s.store.OpenShiftsStartingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, shift := range shifts {
		err := s.store.CloseShift(ctx, shift.ID, shift.Version)
		if errors.Is(err, ErrStaleRecord) {
			continue
		}
		if err != nil {
			log.Printf("[RECONCILER] ❌ failed to close shift %s (%s): %v", shift.ID, shift.Title, err)
			continue
		}
		closed++
		log.Printf("[RECONCILER] ✅ closed shift %s (%s) for enrollment", shift.ID, shift.Title)
	}
	return closed, nil
}

// DetectNoShows flags confirmed enrollees who never had attendance recorded
// on a finished shift, suspending each one. Returns how many were flagged.
func (s *ReconcileService) DetectNoShows(ctx context.Context) (int, error) {
	shifts, err := s.store.FinishedShifts(ctx, s.now())
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, shift := range shifts {
		candidates, err := s.store.UnattendedConfirmed(ctx, shift.ID)
		if err != nil {
			log.Printf("[RECONCILER] ❌ no-show lookup for shift %s failed: %v", shift.ID, err)
			continue
		}
		for _, cand := range candidates {
			err := s.store.MarkNoShow(ctx, cand.EnrollmentID, cand.Version)
			if errors.Is(err, ErrStaleRecord) {
				continue
			}
			if err != nil {
				log.Printf("[RECONCILER] ❌ failed to flag enrollment %s as no-show: %v", cand.EnrollmentID, err)
				continue
			}
			flagged++

			until, err := s.penalties.ApplySuspension(ctx, cand.WorkerID, "")
			if err != nil {
				log.Printf("[RECONCILER] ⚠️ no-show flagged but suspension for worker %s failed: %v", cand.WorkerID, err)
				continue
			}
			log.Printf("[RECONCILER] ✅ %s marked no-show on shift %s, suspended until %s",
				cand.WorkerName, shift.Title, until.Format("2006-01-02"))
		}
	}
	return flagged, nil
}
