package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"diarias_backend/internals/features/attendance/service"
)

type countingStore struct {
	closeSweeps  atomic.Int32
	noShowSweeps atomic.Int32
}

func (c *countingStore) OpenShiftsStartingBefore(context.Context, time.Time) ([]service.ShiftRef, error) {
	c.closeSweeps.Add(1)
	return nil, nil
}

func (c *countingStore) CloseShift(context.Context, uuid.UUID, int) error { return nil }

func (c *countingStore) FinishedShifts(context.Context, time.Time) ([]service.ShiftRef, error) {
	c.noShowSweeps.Add(1)
	return nil, nil
}

func (c *countingStore) UnattendedConfirmed(context.Context, uuid.UUID) ([]service.NoShowCandidate, error) {
	return nil, nil
}

func (c *countingStore) MarkNoShow(context.Context, uuid.UUID, int) error { return nil }

type nopPenaltyStore struct{}

func (nopPenaltyStore) GetWorkerSuspension(context.Context, uuid.UUID) (*service.WorkerSuspension, error) {
	return nil, nil
}

func (nopPenaltyStore) UpdateSuspension(context.Context, uuid.UUID, bool, *time.Time, string) error {
	return nil
}

func newTestReconciler(store *countingStore, interval time.Duration) *Reconciler {
	penalties := service.NewPenaltyService(nopPenaltyStore{}, 2)
	svc := service.NewReconcileService(store, penalties, 4*time.Hour)
	return NewReconciler(svc, interval)
}

func TestReconciler_RunsImmediatelyAndOnTicks(t *testing.T) {
	store := &countingStore{}
	r := newTestReconciler(store, 20*time.Millisecond)

	r.Start()
	time.Sleep(90 * time.Millisecond)
	r.Stop()

	closes := store.closeSweeps.Load()
	noShows := store.noShowSweeps.Load()
	assert.GreaterOrEqual(t, closes, int32(2), "close sweep should run on start and on ticks")
	assert.GreaterOrEqual(t, noShows, int32(1), "no-show sweep should run on even cycles")
	assert.Less(t, noShows, closes, "no-show sweep runs every other cycle")
}

func TestReconciler_StopBeforeStartIsNoop(t *testing.T) {
	r := newTestReconciler(&countingStore{}, time.Minute)
	r.Stop()
}

func TestReconciler_DoubleStartKeepsOneLoop(t *testing.T) {
	store := &countingStore{}
	r := newTestReconciler(store, time.Hour)

	r.Start()
	r.Start()
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	assert.Equal(t, int32(1), store.closeSweeps.Load())
}
