package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrWorkerNotFound = errors.New("worker not found")

const defaultSuspensionReason = "missed shift without justification"

// WorkerSuspension is the slice of a worker record the penalty logic needs.
type WorkerSuspension struct {
	ID        uuid.UUID
	Name      string
	Suspended bool
	Until     *time.Time // date-only
}

type PenaltyStore interface {
	GetWorkerSuspension(ctx context.Context, id uuid.UUID) (*WorkerSuspension, error)
	UpdateSuspension(ctx context.Context, id uuid.UUID, suspended bool, until *time.Time, reason string) error
}

// PenaltyService applies and lifts no-show suspensions. A fresh suspension
// runs from today; piling a penalty onto a still-active suspension extends
// its end date instead, so consecutive no-shows accumulate.
type PenaltyService struct {
	store PenaltyStore
	days  int
	now   func() time.Time
}

func NewPenaltyService(store PenaltyStore, days int) *PenaltyService {
	return &PenaltyService{store: store, days: days, now: time.Now}
}

// WithClock overrides the wall clock (tests).
func (s *PenaltyService) WithClock(now func() time.Time) *PenaltyService {
	s.now = now
	return s
}

func (s *PenaltyService) ApplySuspension(ctx context.Context, workerID uuid.UUID, reason string) (time.Time, error) {
	worker, err := s.store.GetWorkerSuspension(ctx, workerID)
	if err != nil {
		return time.Time{}, err
	}
	if worker == nil {
		return time.Time{}, ErrWorkerNotFound
	}
	if reason == "" {
		reason = defaultSuspensionReason
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	base := today
	if worker.Suspended && worker.Until != nil && !worker.Until.Before(today) {
		base = *worker.Until
	}
	until := base.AddDate(0, 0, s.days)

	if err := s.store.UpdateSuspension(ctx, workerID, true, &until, reason); err != nil {
		return time.Time{}, err
	}
	return until, nil
}

func (s *PenaltyService) LiftSuspension(ctx context.Context, workerID uuid.UUID) error {
	worker, err := s.store.GetWorkerSuspension(ctx, workerID)
	if err != nil {
		return err
	}
	if worker == nil {
		return ErrWorkerNotFound
	}
	return s.store.UpdateSuspension(ctx, workerID, false, nil, "")
}
