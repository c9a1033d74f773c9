package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diarias_backend/internals/features/attendance/model"
	shiftmodel "diarias_backend/internals/features/shifts/model"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func day(offset int) time.Time {
	return time.Date(2026, 3, 10+offset, 0, 0, 0, 0, time.UTC)
}

/* =========================================================
   Penalty fakes + tests
========================================================= */

type fakePenaltyStore struct {
	workers map[uuid.UUID]*WorkerSuspension

	lastSuspended bool
	lastUntil     *time.Time
	lastReason    string
}

func (f *fakePenaltyStore) GetWorkerSuspension(_ context.Context, id uuid.UUID) (*WorkerSuspension, error) {
	return f.workers[id], nil
}

func (f *fakePenaltyStore) UpdateSuspension(_ context.Context, id uuid.UUID, suspended bool, until *time.Time, reason string) error {
	f.lastSuspended = suspended
	f.lastUntil = until
	f.lastReason = reason
	if w := f.workers[id]; w != nil {
		w.Suspended = suspended
		w.Until = until
	}
	return nil
}

func TestApplySuspension_FreshPenaltyRunsFromToday(t *testing.T) {
	worker := &WorkerSuspension{ID: uuid.New(), Name: "Ana"}
	store := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{worker.ID: worker}}
	svc := NewPenaltyService(store, 2).WithClock(clock)

	until, err := svc.ApplySuspension(context.Background(), worker.ID, "")
	require.NoError(t, err)
	assert.Equal(t, day(2), until)
	assert.True(t, store.lastSuspended)
	assert.Equal(t, "missed shift without justification", store.lastReason)
}

func TestApplySuspension_ExtendsActiveSuspension(t *testing.T) {
	existing := day(5)
	worker := &WorkerSuspension{ID: uuid.New(), Name: "Ana", Suspended: true, Until: &existing}
	store := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{worker.ID: worker}}
	svc := NewPenaltyService(store, 2).WithClock(clock)

	until, err := svc.ApplySuspension(context.Background(), worker.ID, "repeat offender")
	require.NoError(t, err)
	assert.Equal(t, day(7), until)
	assert.Equal(t, "repeat offender", store.lastReason)
}

func TestApplySuspension_LapsedSuspensionRestartsFromToday(t *testing.T) {
	lapsed := day(-3)
	worker := &WorkerSuspension{ID: uuid.New(), Name: "Ana", Suspended: true, Until: &lapsed}
	store := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{worker.ID: worker}}
	svc := NewPenaltyService(store, 2).WithClock(clock)

	until, err := svc.ApplySuspension(context.Background(), worker.ID, "")
	require.NoError(t, err)
	assert.Equal(t, day(2), until)
}

func TestApplySuspension_UnknownWorker(t *testing.T) {
	store := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{}}
	svc := NewPenaltyService(store, 2).WithClock(clock)

	_, err := svc.ApplySuspension(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestLiftSuspension(t *testing.T) {
	until := day(2)
	worker := &WorkerSuspension{ID: uuid.New(), Name: "Ana", Suspended: true, Until: &until}
	store := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{worker.ID: worker}}
	svc := NewPenaltyService(store, 2)

	require.NoError(t, svc.LiftSuspension(context.Background(), worker.ID))
	assert.False(t, store.lastSuspended)
	assert.Nil(t, store.lastUntil)
}

/* =========================================================
   Reconcile fakes + tests
========================================================= */

type fakeReconcileStore struct {
	openShifts     []ShiftRef
	finishedShifts []ShiftRef
	unattended     map[uuid.UUID][]NoShowCandidate

	closeErr  map[uuid.UUID]error
	noShowErr map[uuid.UUID]error
	closedIDs []uuid.UUID
	noShowIDs []uuid.UUID
	closeCut  time.Time
}

func (f *fakeReconcileStore) OpenShiftsStartingBefore(_ context.Context, cutoff time.Time) ([]ShiftRef, error) {
	f.closeCut = cutoff
	return f.openShifts, nil
}

func (f *fakeReconcileStore) CloseShift(_ context.Context, id uuid.UUID, _ int) error {
	if err := f.closeErr[id]; err != nil {
		return err
	}
	f.closedIDs = append(f.closedIDs, id)
	return nil
}

func (f *fakeReconcileStore) FinishedShifts(_ context.Context, _ time.Time) ([]ShiftRef, error) {
	return f.finishedShifts, nil
}

func (f *fakeReconcileStore) UnattendedConfirmed(_ context.Context, shiftID uuid.UUID) ([]NoShowCandidate, error) {
	return f.unattended[shiftID], nil
}

func (f *fakeReconcileStore) MarkNoShow(_ context.Context, enrollmentID uuid.UUID, _ int) error {
	if err := f.noShowErr[enrollmentID]; err != nil {
		return err
	}
	f.noShowIDs = append(f.noShowIDs, enrollmentID)
	return nil
}

func newReconciler(store ReconcileStore, penalties *fakePenaltyStore) *ReconcileService {
	svc := NewPenaltyService(penalties, 2).WithClock(clock)
	return NewReconcileService(store, svc, 4*time.Hour).WithClock(clock)
}

func TestCloseDueShifts(t *testing.T) {
	a, b := ShiftRef{ID: uuid.New(), Title: "Morning"}, ShiftRef{ID: uuid.New(), Title: "Night"}
	store := &fakeReconcileStore{openShifts: []ShiftRef{a, b}}

	closed, err := newReconciler(store, &fakePenaltyStore{}).CloseDueShifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	assert.Equal(t, testNow.Add(4*time.Hour), store.closeCut)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, store.closedIDs)
}

func TestCloseDueShifts_StaleShiftSkipped(t *testing.T) {
	a, b := ShiftRef{ID: uuid.New(), Title: "Morning"}, ShiftRef{ID: uuid.New(), Title: "Night"}
	store := &fakeReconcileStore{
		openShifts: []ShiftRef{a, b},
		closeErr:   map[uuid.UUID]error{a.ID: ErrStaleRecord},
	}

	closed, err := newReconciler(store, &fakePenaltyStore{}).CloseDueShifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.Equal(t, []uuid.UUID{b.ID}, store.closedIDs)
}

func TestDetectNoShows_FlagsAndSuspends(t *testing.T) {
	shift := ShiftRef{ID: uuid.New(), Title: "Night"}
	worker := &WorkerSuspension{ID: uuid.New(), Name: "Ana"}
	cand := NoShowCandidate{EnrollmentID: uuid.New(), WorkerID: worker.ID, WorkerName: "Ana"}
	store := &fakeReconcileStore{
		finishedShifts: []ShiftRef{shift},
		unattended:     map[uuid.UUID][]NoShowCandidate{shift.ID: {cand}},
	}
	penalties := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{worker.ID: worker}}

	flagged, err := newReconciler(store, penalties).DetectNoShows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
	assert.Equal(t, []uuid.UUID{cand.EnrollmentID}, store.noShowIDs)
	assert.True(t, worker.Suspended)
	require.NotNil(t, worker.Until)
	assert.Equal(t, day(2), *worker.Until)
}

func TestDetectNoShows_OneFailureDoesNotStopSweep(t *testing.T) {
	shift := ShiftRef{ID: uuid.New(), Title: "Night"}
	w1, w2 := &WorkerSuspension{ID: uuid.New(), Name: "Ana"}, &WorkerSuspension{ID: uuid.New(), Name: "Bruno"}
	bad := NoShowCandidate{EnrollmentID: uuid.New(), WorkerID: w1.ID, WorkerName: "Ana"}
	good := NoShowCandidate{EnrollmentID: uuid.New(), WorkerID: w2.ID, WorkerName: "Bruno"}
	store := &fakeReconcileStore{
		finishedShifts: []ShiftRef{shift},
		unattended:     map[uuid.UUID][]NoShowCandidate{shift.ID: {bad, good}},
		noShowErr:      map[uuid.UUID]error{bad.EnrollmentID: errors.New("db down")},
	}
	penalties := &fakePenaltyStore{workers: map[uuid.UUID]*WorkerSuspension{w1.ID: w1, w2.ID: w2}}

	flagged, err := newReconciler(store, penalties).DetectNoShows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
	assert.False(t, w1.Suspended)
	assert.True(t, w2.Suspended)
}

/* =========================================================
   Attendance capture fakes + tests
========================================================= */

type fakeAttendanceStore struct {
	ref       *EnrollmentRef
	created   *model.AttendanceRecordModel
	createErr error
}

func (f *fakeAttendanceStore) GetEnrollmentRef(_ context.Context, id uuid.UUID) (*EnrollmentRef, error) {
	if f.ref == nil || f.ref.ID != id {
		return nil, nil
	}
	return f.ref, nil
}

func (f *fakeAttendanceStore) CreateAttendance(_ context.Context, rec *model.AttendanceRecordModel) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = rec
	return nil
}

func TestRecordAttendance_Success(t *testing.T) {
	ref := &EnrollmentRef{
		ID:          uuid.New(),
		WorkerID:    uuid.New(),
		Status:      shiftmodel.EnrollmentConfirmed,
		ShiftID:     uuid.New(),
		ShiftStatus: shiftmodel.ShiftInProgress,
	}
	store := &fakeAttendanceStore{ref: ref}
	supervisor := uuid.New()

	rec, err := NewAttendanceService(store).RecordAttendance(context.Background(), AttendanceInput{
		EnrollmentID: ref.ID,
		RecordedBy:   supervisor,
		Note:         "boarded at terminal",
	})
	require.NoError(t, err)
	assert.Equal(t, ref.ID, rec.AttendanceEnrollmentID)
	assert.Equal(t, supervisor, rec.AttendanceRecordedBy)
	assert.NotNil(t, store.created)
}

func TestRecordAttendance_RejectsPendingEnrollment(t *testing.T) {
	ref := &EnrollmentRef{
		ID:          uuid.New(),
		Status:      shiftmodel.EnrollmentPending,
		ShiftStatus: shiftmodel.ShiftInProgress,
	}
	store := &fakeAttendanceStore{ref: ref}

	_, err := NewAttendanceService(store).RecordAttendance(context.Background(), AttendanceInput{EnrollmentID: ref.ID})
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestRecordAttendance_RejectsCancelledShift(t *testing.T) {
	ref := &EnrollmentRef{
		ID:          uuid.New(),
		Status:      shiftmodel.EnrollmentConfirmed,
		ShiftStatus: shiftmodel.ShiftCancelled,
	}
	store := &fakeAttendanceStore{ref: ref}

	_, err := NewAttendanceService(store).RecordAttendance(context.Background(), AttendanceInput{EnrollmentID: ref.ID})
	assert.ErrorIs(t, err, ErrShiftCancelled)
}

func TestRecordAttendance_UnknownEnrollment(t *testing.T) {
	store := &fakeAttendanceStore{}
	_, err := NewAttendanceService(store).RecordAttendance(context.Background(), AttendanceInput{EnrollmentID: uuid.New()})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestRecordAttendance_Duplicate(t *testing.T) {
	ref := &EnrollmentRef{
		ID:          uuid.New(),
		Status:      shiftmodel.EnrollmentConfirmed,
		ShiftStatus: shiftmodel.ShiftCompleted,
	}
	store := &fakeAttendanceStore{ref: ref, createErr: ErrAlreadyRecorded}

	_, err := NewAttendanceService(store).RecordAttendance(context.Background(), AttendanceInput{EnrollmentID: ref.ID})
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
}
